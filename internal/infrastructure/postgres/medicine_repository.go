package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, code, name, unit, stock, min_stock, purchase_price, sale_price, active, created_at, updated_at`

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL
// (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Unit, &m.Stock, &m.MinStock,
		&m.PurchasePrice, &m.SalePrice, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan medicine: %w", err)
	}
	return &m, nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(ctx context.Context, id int64) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	return scanMedicine(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el medicamento bloqueando su fila (SELECT FOR UPDATE).
// Solo dentro de una transacción.
func (r *MedicineRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1 FOR UPDATE`
	return scanMedicine(r.q.QueryRow(ctx, query, id))
}

// ListActive lista medicamentos activos ordenados por nombre. El término de
// búsqueda llega ya normalizado (minúsculas, sin tildes); unaccent en la columna
// hace el otro lado de la comparación.
func (r *MedicineRepo) ListActive(ctx context.Context, search string, limit, offset int) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE active = true`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" AND (lower(unaccent(name)) LIKE $%d OR lower(code) LIKE $%d)", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Unit, &m.Stock, &m.MinStock,
			&m.PurchasePrice, &m.SalePrice, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateStock fija el stock agregado (solo lo llama el motor de movimientos,
// dentro de su transacción).
func (r *MedicineRepo) UpdateStock(ctx context.Context, id int64, stock int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE medicines SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update medicine stock: %w", err)
	}
	return nil
}
