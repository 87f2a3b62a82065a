package catalog

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// listLimit tope de filas del catálogo activo (alimenta desplegables, no páginas).
const listLimit = 500

// Cache puerto del caché del listado activo sin filtro (la consulta más repetida:
// cada apertura del formulario de ajuste la dispara). Las búsquedas lo omiten.
type Cache interface {
	GetActiveList(ctx context.Context) ([]dto.MedicineDTO, bool)
	SetActiveList(ctx context.Context, list []dto.MedicineDTO)
	Invalidate(ctx context.Context)
}

// UseCase accesor de catálogo: lecturas de medicamentos activos y sus lotes.
type UseCase struct {
	medicineRepo repository.MedicineRepository
	batchRepo    repository.MedicineBatchRepository
	cache        Cache // puede ser nil (ej. tests, despliegue sin Redis)
}

// NewUseCase construye el accesor de catálogo.
func NewUseCase(medicineRepo repository.MedicineRepository, batchRepo repository.MedicineBatchRepository, cache Cache) *UseCase {
	return &UseCase{medicineRepo: medicineRepo, batchRepo: batchRepo, cache: cache}
}

// ListActiveMedicines lista medicamentos activos, opcionalmente filtrados por
// búsqueda en código o nombre (insensible a tildes y mayúsculas).
func (uc *UseCase) ListActiveMedicines(ctx context.Context, search string) ([]dto.MedicineDTO, error) {
	search = NormalizeSearch(search)

	if search == "" && uc.cache != nil {
		if list, ok := uc.cache.GetActiveList(ctx); ok {
			return list, nil
		}
	}

	medicines, err := uc.medicineRepo.ListActive(ctx, search, listLimit, 0)
	if err != nil {
		return nil, err
	}
	list := make([]dto.MedicineDTO, 0, len(medicines))
	for _, m := range medicines {
		list = append(list, dto.ToMedicineDTO(m))
	}

	if search == "" && uc.cache != nil {
		uc.cache.SetActiveList(ctx, list)
	}
	return list, nil
}

// ListBatches lista los lotes de un medicamento ordenados por vencimiento
// ascendente. Devuelve ErrNotFound si el medicamento no existe en el catálogo.
func (uc *UseCase) ListBatches(ctx context.Context, medicineID int64) ([]dto.MedicineBatchDTO, error) {
	medicine, err := uc.medicineRepo.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListByMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	list := make([]dto.MedicineBatchDTO, 0, len(batches))
	for _, b := range batches {
		list = append(list, dto.ToMedicineBatchDTO(b))
	}
	return list, nil
}

// InvalidateCache descarta el listado cacheado. El motor de ajustes lo llama
// después de cada commit para que el catálogo refleje el stock nuevo.
func (uc *UseCase) InvalidateCache(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}

// NormalizeSearch baja a minúsculas y elimina marcas diacríticas del término de
// búsqueda, para que "paracetamol" encuentre "Paracétamol".
func NormalizeSearch(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
