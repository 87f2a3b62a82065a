package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/kangmasbudiman/klinikcare-inventory/internal/application/ledger"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// stubMovementRepo captura lo que el caso de uso le pide al repositorio.
type stubMovementRepo struct {
	memMovementRepo

	gotFilter repository.MovementFilter
	gotLimit  int
	gotOffset int
	gotSince  time.Time

	list  []*entity.StockMovement
	total int64
	stats repository.MovementStats
}

func (r *stubMovementRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int64, error) {
	r.gotFilter, r.gotLimit, r.gotOffset = f, limit, offset
	return r.list, r.total, nil
}

func (r *stubMovementRepo) GetStats(_ context.Context, since time.Time) (*repository.MovementStats, error) {
	r.gotSince = since
	return &r.stats, nil
}

func TestQueryMovements_DefaultsDePaginacion(t *testing.T) {
	repo := &stubMovementRepo{}
	uc := appledger.NewQueryUseCase(repo)

	page, err := uc.QueryMovements(context.Background(), dto.MovementQueryRequest{})
	require.NoError(t, err)

	assert.Equal(t, 20, repo.gotLimit, "per_page por defecto")
	assert.Equal(t, 0, repo.gotOffset, "página 1 arranca en offset 0")
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.LastPage, "sin registros la última página sigue siendo 1")
	assert.Empty(t, page.Data)
}

func TestQueryMovements_PaginaYTamano(t *testing.T) {
	repo := &stubMovementRepo{total: 45}
	uc := appledger.NewQueryUseCase(repo)

	req := dto.MovementQueryRequest{}
	req.Page = 3
	req.PerPage = 10
	page, err := uc.QueryMovements(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, 20, repo.gotOffset)
	assert.Equal(t, 5, page.LastPage, "45 registros / 10 por página = 5 páginas")
	assert.Equal(t, int64(45), page.Total)
}

func TestQueryMovements_FiltrosLleganAlRepositorio(t *testing.T) {
	repo := &stubMovementRepo{}
	uc := appledger.NewQueryUseCase(repo)

	req := dto.MovementQueryRequest{
		Search:       "MV-2026",
		MovementType: entity.MovementTypeOut,
		Reason:       entity.ReasonDamage,
		MedicineID:   7,
		StartDate:    "2026-08-01",
		EndDate:      "2026-08-30",
	}
	_, err := uc.QueryMovements(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "MV-2026", repo.gotFilter.Search)
	assert.Equal(t, entity.MovementTypeOut, repo.gotFilter.Type)
	assert.Equal(t, entity.ReasonDamage, repo.gotFilter.Reason)
	assert.Equal(t, int64(7), repo.gotFilter.MedicineID)

	require.NotNil(t, repo.gotFilter.StartDate)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *repo.gotFilter.StartDate)

	// end_date es inclusivo: se corre al último instante del día
	require.NotNil(t, repo.gotFilter.EndDate)
	assert.Equal(t, 30, repo.gotFilter.EndDate.Day())
	assert.Equal(t, 23, repo.gotFilter.EndDate.Hour())
}

func TestQueryMovements_FechaInvalida(t *testing.T) {
	repo := &stubMovementRepo{}
	uc := appledger.NewQueryUseCase(repo)

	req := dto.MovementQueryRequest{StartDate: "30-08-2026"}
	_, err := uc.QueryMovements(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetStats_VentanaPorDefecto(t *testing.T) {
	repo := &stubMovementRepo{stats: repository.MovementStats{TotalIn: 120, TotalOut: 80, MovementsToday: 4}}
	uc := appledger.NewQueryUseCase(repo)

	stats, err := uc.GetStats(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 30, stats.PeriodDays)
	assert.Equal(t, int64(120), stats.TotalIn)
	assert.Equal(t, int64(80), stats.TotalOut)
	assert.Equal(t, int64(4), stats.MovementsToday)

	expectedSince := time.Now().AddDate(0, 0, -30)
	assert.WithinDuration(t, expectedSince, repo.gotSince, time.Minute)
}

func TestGetStats_VentanaExplicita(t *testing.T) {
	repo := &stubMovementRepo{}
	uc := appledger.NewQueryUseCase(repo)

	stats, err := uc.GetStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.PeriodDays)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.gotSince, time.Minute)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarjeta de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockCard_ConHistorial(t *testing.T) {
	store := newMemStore()
	store.medicines[7] = &entity.Medicine{ID: 7, Code: "PCM500", Name: "Paracetamol 500mg", Unit: "strip", Stock: 35, MinStock: 10, Active: true}
	store.movements = []*entity.StockMovement{
		{ID: 1, MedicineID: 7, Type: entity.MovementTypeIn, Quantity: 40, StockBefore: 0, StockAfter: 40},
		{ID: 2, MedicineID: 7, Type: entity.MovementTypeOut, Quantity: 5, StockBefore: 40, StockAfter: 35},
		{ID: 3, MedicineID: 42, Type: entity.MovementTypeIn, Quantity: 9, StockBefore: 0, StockAfter: 9},
	}
	uc := appledger.NewStockCardUseCase(&memMedicineRepo{store}, &memMovementRepo{store})

	card, err := uc.GetStockCard(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), card.Medicine.ID)
	assert.Equal(t, int64(35), card.CurrentStock)
	require.Len(t, card.Movements, 2, "solo los movimientos del medicamento pedido")
	assert.Equal(t, card.Movements[1].StockAfter, card.CurrentStock)
}

// Un medicamento sin movimientos devuelve la tarjeta con lista vacía, no error.
func TestGetStockCard_SinMovimientos(t *testing.T) {
	store := newMemStore()
	store.medicines[7] = &entity.Medicine{ID: 7, Code: "PCM500", Name: "Paracetamol 500mg", Unit: "strip", Stock: 0, MinStock: 10, Active: true}
	uc := appledger.NewStockCardUseCase(&memMedicineRepo{store}, &memMovementRepo{store})

	card, err := uc.GetStockCard(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, card.Movements)
	assert.Equal(t, entity.StockStatusOutOfStock, card.StockStatus)
}

func TestGetStockCard_MedicamentoInexistente(t *testing.T) {
	store := newMemStore()
	uc := appledger.NewStockCardUseCase(&memMedicineRepo{store}, &memMovementRepo{store})

	_, err := uc.GetStockCard(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
