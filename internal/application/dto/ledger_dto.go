package dto

import (
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// MovementQueryRequest filtros del listado de movimientos (query params).
type MovementQueryRequest struct {
	PageRequest
	Search       string `query:"search"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=in out"`
	Reason       string `query:"reason"`
	MedicineID   int64  `query:"medicine_id" validate:"min=0"`
	StartDate    string `query:"start_date"` // YYYY-MM-DD
	EndDate      string `query:"end_date"`   // YYYY-MM-DD
}

// StockMovementDTO entrada del libro tal como la ve la API.
type StockMovementDTO struct {
	ID             int64     `json:"id"`
	MovementNumber string    `json:"movement_number"`
	MedicineID     int64     `json:"medicine_id"`
	BatchID        *int64    `json:"medicine_batch_id,omitempty"`
	Type           string    `json:"movement_type"`
	Reason         string    `json:"reason"`
	Quantity       int64     `json:"quantity"`
	Unit           string    `json:"unit"`
	StockBefore    int64     `json:"stock_before"`
	StockAfter     int64     `json:"stock_after"`
	ReferenceType  *string   `json:"reference_type,omitempty"`
	ReferenceID    *int64    `json:"reference_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	MovementDate   time.Time `json:"movement_date"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// MovementPageDTO página de movimientos con metadatos de paginación.
type MovementPageDTO struct {
	Data     []StockMovementDTO `json:"data"`
	Total    int64              `json:"total"`
	LastPage int                `json:"last_page"`
	Page     int                `json:"page"`
	PerPage  int                `json:"per_page"`
}

// MovementStatsDTO agregados del libro para el período consultado.
type MovementStatsDTO struct {
	TotalIn        int64 `json:"total_in"`
	TotalOut       int64 `json:"total_out"`
	MovementsToday int64 `json:"movements_today"`
	PeriodDays     int   `json:"period_days"`
}

// StockCardDTO tarjeta de stock: medicamento + stock vivo + historial completo.
type StockCardDTO struct {
	Medicine     MedicineDTO        `json:"medicine"`
	CurrentStock int64              `json:"current_stock"`
	StockStatus  string             `json:"stock_status"`
	Movements    []StockMovementDTO `json:"movements"`
}

// StockAdjustmentRequest body de POST /api/stock-adjustments. La validación de
// campos usa tags; la pertenencia del motivo al tipo se valida en el caso de uso.
type StockAdjustmentRequest struct {
	MedicineID     int64  `json:"medicine_id" validate:"required,gt=0"`
	BatchID        *int64 `json:"medicine_batch_id,omitempty" validate:"omitempty,gt=0"`
	AdjustmentType string `json:"adjustment_type" validate:"required,oneof=plus minus"`
	Quantity       int64  `json:"quantity" validate:"required,gte=1"`
	Reason         string `json:"reason" validate:"required"`
	Notes          string `json:"notes,omitempty"`
}

// ToStockMovementDTO convierte la entidad en su representación de API.
func ToStockMovementDTO(m *entity.StockMovement) StockMovementDTO {
	return StockMovementDTO{
		ID:             m.ID,
		MovementNumber: m.MovementNumber,
		MedicineID:     m.MedicineID,
		BatchID:        m.BatchID,
		Type:           m.Type,
		Reason:         m.Reason,
		Quantity:       m.Quantity,
		Unit:           m.Unit,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Notes:          m.Notes,
		MovementDate:   m.MovementDate,
		CreatedBy:      m.CreatedBy,
	}
}

// ToStockMovementDTOs convierte una lista de entidades.
func ToStockMovementDTOs(list []*entity.StockMovement) []StockMovementDTO {
	out := make([]StockMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementDTO(m))
	}
	return out
}
