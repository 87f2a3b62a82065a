package repository

import (
	"context"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// MedicineRepository define el puerto de persistencia del catálogo de medicamentos (DIP).
// El catálogo se administra fuera de este servicio; aquí solo se lee y se mantiene
// el stock agregado vía el motor de movimientos.
type MedicineRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Medicine, error)

	// GetForUpdate obtiene el medicamento bloqueando su fila (SELECT FOR UPDATE).
	// Solo debe llamarse dentro de una transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Medicine, error)

	// ListActive lista medicamentos activos, opcionalmente filtrados por búsqueda
	// en código o nombre, ordenados por nombre.
	ListActive(ctx context.Context, search string, limit, offset int) ([]*entity.Medicine, error)

	// UpdateStock fija el stock agregado (usado solo por el motor de movimientos).
	UpdateStock(ctx context.Context, id int64, stock int64) error
}
