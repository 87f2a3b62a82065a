package repository

import (
	"context"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// MedicineBatchRepository define el puerto de persistencia de lotes (DIP).
type MedicineBatchRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.MedicineBatch, error)

	// GetForUpdate obtiene el lote bloqueando su fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.MedicineBatch, error)

	// ListByMedicine lista los lotes de un medicamento ordenados por fecha de
	// vencimiento ascendente (el que vence primero, primero: sesgo FEFO).
	ListByMedicine(ctx context.Context, medicineID int64) ([]*entity.MedicineBatch, error)

	// UpdateQuantity fija la cantidad restante del lote (motor de movimientos).
	UpdateQuantity(ctx context.Context, id int64, quantity int64) error
}
