package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicineBatch representa un lote de un medicamento (número de lote, vencimiento,
// cantidad restante). Invariante: Quantity <= ReceivedQty; ExpiryDate es inmutable.
type MedicineBatch struct {
	ID          int64
	MedicineID  int64
	BatchNumber string
	ExpiryDate  time.Time
	Quantity    int64 // cantidad restante en este lote
	ReceivedQty int64 // cantidad original recibida
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired indica si el lote ya venció.
func (b *MedicineBatch) IsExpired() bool {
	return b.ExpiryDate.Before(time.Now())
}

// ExpiresWithin indica si el lote vence dentro de la duración dada.
func (b *MedicineBatch) ExpiresWithin(d time.Duration) bool {
	return b.ExpiryDate.Before(time.Now().Add(d))
}

// HasStock indica si el lote tiene cantidad disponible.
func (b *MedicineBatch) HasStock() bool {
	return b.Quantity > 0
}
