package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, movement_number, medicine_id, medicine_batch_id, movement_type, reason, quantity, unit, stock_before, stock_after, reference_type, reference_id, notes, movement_date, created_at, created_by`

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: este adaptador no expone
// UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y fija el ID generado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (movement_number, medicine_id, medicine_batch_id, movement_type, reason, quantity, unit, stock_before, stock_after, reference_type, reference_id, notes, movement_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	err := r.q.QueryRow(ctx, query,
		m.MovementNumber, m.MedicineID, m.BatchID, m.Type, m.Reason, m.Quantity, m.Unit,
		m.StockBefore, m.StockAfter, m.ReferenceType, m.ReferenceID, m.Notes,
		m.MovementDate, m.CreatedAt, createdBy,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create stock movement: %w (movement_number duplicado)", err)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// buildFilter arma las cláusulas WHERE del filtro. Los campos en cero se ignoran.
func buildFilter(f repository.MovementFilter) (string, []any) {
	var where []string
	var args []any
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.Search != "" {
		add("movement_number ILIKE $%d", "%"+f.Search+"%")
	}
	if f.Type != "" {
		add("movement_type = $%d", f.Type)
	}
	if f.Reason != "" {
		add("reason = $%d", f.Reason)
	}
	if f.MedicineID > 0 {
		add("medicine_id = $%d", f.MedicineID)
	}
	if f.StartDate != nil {
		add("movement_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("movement_date <= $%d", *f.EndDate)
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// List devuelve una página (más reciente primero) y el total del filtro.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int64, error) {
	whereSQL, args := buildFilter(f)

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements` + whereSQL +
		fmt.Sprintf(" ORDER BY movement_date DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListByMedicine devuelve el historial completo en orden cronológico (tarjeta de stock).
func (r *StockMovementRepo) ListByMedicine(ctx context.Context, medicineID int64) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE medicine_id = $1 ORDER BY movement_date ASC, id ASC`
	rows, err := r.q.Query(ctx, query, medicineID)
	if err != nil {
		return nil, fmt.Errorf("list movements by medicine: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetStats agrega entradas, salidas y el conteo de hoy en un solo round trip.
func (r *StockMovementRepo) GetStats(ctx context.Context, since time.Time) (*repository.MovementStats, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'in'  AND movement_date >= $1), 0),
			COALESCE(SUM(quantity) FILTER (WHERE movement_type = 'out' AND movement_date >= $1), 0),
			COUNT(*) FILTER (WHERE movement_date >= date_trunc('day', now()))
		FROM stock_movements`
	var s repository.MovementStats
	if err := r.q.QueryRow(ctx, query, since).Scan(&s.TotalIn, &s.TotalOut, &s.MovementsToday); err != nil {
		return nil, fmt.Errorf("movement stats: %w", err)
	}
	return &s, nil
}

// NextSequence obtiene el siguiente valor de la secuencia de numeración de movimientos.
func (r *StockMovementRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('stock_movement_number_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next movement sequence: %w", err)
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovementRow(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var createdBy *string
	if err := row.Scan(&m.ID, &m.MovementNumber, &m.MedicineID, &m.BatchID, &m.Type, &m.Reason,
		&m.Quantity, &m.Unit, &m.StockBefore, &m.StockAfter, &m.ReferenceType, &m.ReferenceID,
		&m.Notes, &m.MovementDate, &m.CreatedAt, &createdBy); err != nil {
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
