package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock de un medicamento (derivados del umbral mínimo).
const (
	StockStatusNormal     = "normal"
	StockStatusLow        = "low"
	StockStatusOutOfStock = "out_of_stock"
)

// Medicine representa un medicamento del catálogo de la farmacia.
// Stock es el agregado vivo; el detalle por lote vive en MedicineBatch.
type Medicine struct {
	ID            int64
	Code          string // código único del medicamento
	Name          string
	Unit          string // unidad de medida: tablet, botol, strip, ...
	Stock         int64  // cantidad agregada actual (mantenida por el libro de movimientos)
	MinStock      int64  // umbral de stock bajo
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus clasifica el stock actual contra el umbral mínimo.
func (m *Medicine) StockStatus() string {
	switch {
	case m.Stock <= 0:
		return StockStatusOutOfStock
	case m.Stock <= m.MinStock:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}
