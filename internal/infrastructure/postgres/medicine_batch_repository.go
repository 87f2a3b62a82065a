package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

var _ repository.MedicineBatchRepository = (*MedicineBatchRepo)(nil)

const batchColumns = `id, medicine_id, batch_number, expiry_date, quantity, received_qty, unit_cost, created_at, updated_at`

// MedicineBatchRepo implementación de MedicineBatchRepository sobre PostgreSQL
// (usable con pool o tx).
type MedicineBatchRepo struct {
	q Querier
}

// NewMedicineBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewMedicineBatchRepository(q Querier) *MedicineBatchRepo {
	return &MedicineBatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.MedicineBatch, error) {
	var b entity.MedicineBatch
	err := row.Scan(&b.ID, &b.MedicineID, &b.BatchNumber, &b.ExpiryDate,
		&b.Quantity, &b.ReceivedQty, &b.UnitCost, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	return &b, nil
}

// GetByID obtiene un lote por ID.
func (r *MedicineBatchRepo) GetByID(ctx context.Context, id int64) (*entity.MedicineBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM medicine_batches WHERE id = $1`
	return scanBatch(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el lote bloqueando su fila (SELECT FOR UPDATE).
func (r *MedicineBatchRepo) GetForUpdate(ctx context.Context, id int64) (*entity.MedicineBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM medicine_batches WHERE id = $1 FOR UPDATE`
	return scanBatch(r.q.QueryRow(ctx, query, id))
}

// ListByMedicine lista los lotes de un medicamento, el que vence primero, primero.
func (r *MedicineBatchRepo) ListByMedicine(ctx context.Context, medicineID int64) ([]*entity.MedicineBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM medicine_batches WHERE medicine_id = $1 ORDER BY expiry_date ASC, id ASC`
	rows, err := r.q.Query(ctx, query, medicineID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.MedicineBatch
	for rows.Next() {
		var b entity.MedicineBatch
		if err := rows.Scan(&b.ID, &b.MedicineID, &b.BatchNumber, &b.ExpiryDate,
			&b.Quantity, &b.ReceivedQty, &b.UnitCost, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad restante del lote (motor de movimientos).
func (r *MedicineBatchRepo) UpdateQuantity(ctx context.Context, id int64, quantity int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE medicine_batches SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}
