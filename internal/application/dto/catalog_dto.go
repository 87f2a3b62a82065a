package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// MedicineDTO medicamento del catálogo con su stock agregado actual.
type MedicineDTO struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	StockStatus string          `json:"stock_status"` // normal | low | out_of_stock
	SalePrice   decimal.Decimal `json:"sale_price"`
}

// MedicineBatchDTO lote con cantidad restante y vencimiento.
type MedicineBatchDTO struct {
	ID          int64           `json:"id"`
	MedicineID  int64           `json:"medicine_id"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	Quantity    int64           `json:"quantity"`
	ReceivedQty int64           `json:"received_qty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Expired     bool            `json:"expired"`
}

// ToMedicineDTO convierte la entidad en su representación de API.
func ToMedicineDTO(m *entity.Medicine) MedicineDTO {
	return MedicineDTO{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Unit:        m.Unit,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		StockStatus: m.StockStatus(),
		SalePrice:   m.SalePrice,
	}
}

// ToMedicineBatchDTO convierte la entidad lote en su representación de API.
func ToMedicineBatchDTO(b *entity.MedicineBatch) MedicineBatchDTO {
	return MedicineBatchDTO{
		ID:          b.ID,
		MedicineID:  b.MedicineID,
		BatchNumber: b.BatchNumber,
		ExpiryDate:  b.ExpiryDate,
		Quantity:    b.Quantity,
		ReceivedQty: b.ReceivedQty,
		UnitCost:    b.UnitCost,
		Expired:     b.IsExpired(),
	}
}
