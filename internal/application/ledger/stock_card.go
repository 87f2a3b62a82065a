package ledger

import (
	"context"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// StockCardUseCase proyecta la tarjeta de stock de un medicamento: historial
// cronológico completo más el saldo vivo. Solo lectura, para auditoría.
type StockCardUseCase struct {
	medicineRepo repository.MedicineRepository
	movRepo      repository.StockMovementRepository
}

// NewStockCardUseCase construye el proyector de tarjeta de stock.
func NewStockCardUseCase(medicineRepo repository.MedicineRepository, movRepo repository.StockMovementRepository) *StockCardUseCase {
	return &StockCardUseCase{medicineRepo: medicineRepo, movRepo: movRepo}
}

// GetStockCard devuelve medicamento, stock actual y el historial completo en
// orden cronológico. Un medicamento sin movimientos devuelve movements vacío,
// nunca error: el saldo actual sigue siendo un valor definido.
func (uc *StockCardUseCase) GetStockCard(ctx context.Context, medicineID int64) (*dto.StockCardDTO, error) {
	medicine, err := uc.medicineRepo.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByMedicine(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	return &dto.StockCardDTO{
		Medicine:     dto.ToMedicineDTO(medicine),
		CurrentStock: medicine.Stock,
		StockStatus:  medicine.StockStatus(),
		Movements:    dto.ToStockMovementDTOs(movements),
	}, nil
}
