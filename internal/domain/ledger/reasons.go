package ledger

import (
	"fmt"
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// Tipos de ajuste manual de stock.
const (
	AdjustmentPlus  = "plus"
	AdjustmentMinus = "minus"
)

// ValidReasonsFor devuelve el conjunto de motivos válidos para un tipo de ajuste
// (servicio de dominio, función pura). El conjunto es función del tipo y nada más.
func ValidReasonsFor(adjustmentType string) []string {
	switch adjustmentType {
	case AdjustmentPlus:
		return []string{
			entity.ReasonAdjustmentPlus,
			entity.ReasonReturnPatient,
			entity.ReasonInitialStock,
			entity.ReasonOther,
		}
	case AdjustmentMinus:
		return []string{
			entity.ReasonAdjustmentMinus,
			entity.ReasonExpired,
			entity.ReasonDamage,
			entity.ReasonReturnSupplier,
			entity.ReasonOther,
		}
	default:
		return nil
	}
}

// DefaultReasonFor devuelve el motivo por defecto al cambiar de tipo de ajuste.
func DefaultReasonFor(adjustmentType string) string {
	switch adjustmentType {
	case AdjustmentPlus:
		return entity.ReasonAdjustmentPlus
	case AdjustmentMinus:
		return entity.ReasonAdjustmentMinus
	default:
		return ""
	}
}

// IsValidReason indica si el motivo pertenece al conjunto válido del tipo de ajuste.
func IsValidReason(adjustmentType, reason string) bool {
	for _, r := range ValidReasonsFor(adjustmentType) {
		if r == reason {
			return true
		}
	}
	return false
}

// MovementTypeFor traduce el tipo de ajuste al tipo de movimiento del libro.
func MovementTypeFor(adjustmentType string) string {
	if adjustmentType == AdjustmentMinus {
		return entity.MovementTypeOut
	}
	return entity.MovementTypeIn
}

// ApplyQuantity calcula el stock resultante según el tipo de movimiento.
func ApplyQuantity(stockBefore, quantity int64, movementType string) int64 {
	if movementType == entity.MovementTypeOut {
		return stockBefore - quantity
	}
	return stockBefore + quantity
}

// FormatMovementNumber genera el número de movimiento con aspecto secuencial:
// MV-YYYYMMDD-NNNNNN. La unicidad la garantiza la secuencia de la base de datos.
func FormatMovementNumber(seq int64, date time.Time) string {
	return fmt.Sprintf("MV-%s-%06d", date.Format("20060102"), seq)
}
