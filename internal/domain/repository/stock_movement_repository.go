package repository

import (
	"context"
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// MovementFilter filtros de consulta del libro de movimientos. Los campos en cero
// se ignoran.
type MovementFilter struct {
	Search     string // coincide contra movement_number
	Type       string // in | out
	Reason     string
	MedicineID int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// MovementStats agregados del libro para un período.
type MovementStats struct {
	TotalIn        int64 // suma de cantidades de entradas en el período
	TotalOut       int64 // suma de cantidades de salidas en el período
	MovementsToday int64 // movimientos registrados hoy
}

// StockMovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// El libro es append-only: no existe Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error

	// List devuelve una página de movimientos (más reciente primero) y el total
	// de registros que satisfacen el filtro.
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.StockMovement, int64, error)

	// ListByMedicine devuelve el historial completo de un medicamento en orden
	// cronológico ascendente (lectura de tarjeta de stock).
	ListByMedicine(ctx context.Context, medicineID int64) ([]*entity.StockMovement, error)

	// GetStats calcula los agregados del libro desde la fecha dada.
	GetStats(ctx context.Context, since time.Time) (*MovementStats, error)

	// NextSequence obtiene el siguiente valor de la secuencia de numeración.
	NextSequence(ctx context.Context) (int64, error)
}
