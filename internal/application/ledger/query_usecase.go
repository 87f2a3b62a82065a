package ledger

import (
	"context"
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// defaultStatsPeriodDays ventana por defecto de los agregados del libro.
const defaultStatsPeriodDays = 30

// QueryUseCase consultas de solo lectura sobre el libro de movimientos.
// Listado paginado y estadísticas son operaciones independientes a propósito:
// cada una es su propio round trip para que el cliente pueda renderizar
// resultados parciales sin que una bloquee a la otra.
type QueryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewQueryUseCase construye el componente de consulta del libro.
func NewQueryUseCase(movRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo}
}

// QueryMovements devuelve una página de movimientos (más reciente primero) según
// los filtros. Releer con filtros idénticos es idempotente: sin efectos.
func (uc *QueryUseCase) QueryMovements(ctx context.Context, req dto.MovementQueryRequest) (*dto.MovementPageDTO, error) {
	req.DefaultPage()

	filter := repository.MovementFilter{
		Search:     req.Search,
		Type:       req.MovementType,
		Reason:     req.Reason,
		MedicineID: req.MedicineID,
	}
	var err error
	if filter.StartDate, err = parseDate(req.StartDate, false); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if filter.EndDate, err = parseDate(req.EndDate, true); err != nil {
		return nil, domain.ErrInvalidInput
	}

	movements, total, err := uc.movRepo.List(ctx, filter, req.PerPage, req.Offset())
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &dto.MovementPageDTO{
		Data:     dto.ToStockMovementDTOs(movements),
		Total:    total,
		LastPage: lastPage,
		Page:     req.Page,
		PerPage:  req.PerPage,
	}, nil
}

// GetStats calcula los agregados del libro para una ventana móvil de periodDays
// días (<=0 usa el default).
func (uc *QueryUseCase) GetStats(ctx context.Context, periodDays int) (*dto.MovementStatsDTO, error) {
	if periodDays <= 0 {
		periodDays = defaultStatsPeriodDays
	}
	since := time.Now().AddDate(0, 0, -periodDays)
	stats, err := uc.movRepo.GetStats(ctx, since)
	if err != nil {
		return nil, err
	}
	return &dto.MovementStatsDTO{
		TotalIn:        stats.TotalIn,
		TotalOut:       stats.TotalOut,
		MovementsToday: stats.MovementsToday,
		PeriodDays:     periodDays,
	}, nil
}

// parseDate interpreta YYYY-MM-DD; endOfDay desplaza al último instante del día
// para que end_date sea inclusivo.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
