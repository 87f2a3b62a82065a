package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
)

type listEnvelope[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

// ListActiveMedicines devuelve el catálogo de medicamentos activos. search
// filtra por nombre o código (insensible a mayúsculas y acentos, lo resuelve
// el servidor).
func (c *Client) ListActiveMedicines(ctx context.Context, search string) ([]dto.MedicineDTO, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var env listEnvelope[dto.MedicineDTO]
	if err := c.get(ctx, "/api/medicines", q, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListBatches devuelve los lotes del medicamento ordenados por vencimiento
// ascendente (el más próximo a vencer primero).
func (c *Client) ListBatches(ctx context.Context, medicineID int64) ([]dto.MedicineBatchDTO, error) {
	var env listEnvelope[dto.MedicineBatchDTO]
	path := fmt.Sprintf("/api/medicines/%d/batches", medicineID)
	if err := c.get(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
