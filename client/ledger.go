package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
)

// MovementQuery filtros del listado de movimientos. Todos opcionales y
// componibles; los campos en cero se omiten de la petición.
type MovementQuery struct {
	Search       string
	MovementType string // "in" | "out"
	Reason       string
	MedicineID   int64
	StartDate    string // YYYY-MM-DD, inclusive
	EndDate      string // YYYY-MM-DD, inclusive
	Page         int
	PerPage      int
}

func (q MovementQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.MovementType != "" {
		v.Set("movement_type", q.MovementType)
	}
	if q.Reason != "" {
		v.Set("reason", q.Reason)
	}
	if q.MedicineID > 0 {
		v.Set("medicine_id", strconv.FormatInt(q.MedicineID, 10))
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

// QueryMovements consulta el libro de movimientos, más reciente primero.
func (c *Client) QueryMovements(ctx context.Context, q MovementQuery) (*dto.MovementPageDTO, error) {
	var page dto.MovementPageDTO
	if err := c.get(ctx, "/api/stock-movements", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetStats devuelve los totales del libro en la ventana indicada.
// periodDays <= 0 usa la ventana por defecto del servidor.
func (c *Client) GetStats(ctx context.Context, periodDays int) (*dto.MovementStatsDTO, error) {
	q := url.Values{}
	if periodDays > 0 {
		q.Set("period_days", strconv.Itoa(periodDays))
	}
	var stats dto.MovementStatsDTO
	if err := c.get(ctx, "/api/stock-movements/stats", q, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetStockCard devuelve la tarjeta de stock del medicamento: historial completo
// en orden cronológico. Un medicamento sin movimientos devuelve la tarjeta con
// la lista vacía, no es un error.
func (c *Client) GetStockCard(ctx context.Context, medicineID int64) (*dto.StockCardDTO, error) {
	var card dto.StockCardDTO
	path := fmt.Sprintf("/api/medicines/%d/stock-card", medicineID)
	if err := c.get(ctx, path, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
