package ledger

import (
	"context"
	"time"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/ledger"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// CatalogInvalidator descarta proyecciones cacheadas del catálogo tras un commit.
type CatalogInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// AdjustmentUseCase registra ajustes manuales de stock de forma transaccional:
// bloqueo de fila sobre el medicamento (y el lote, si aplica), cálculo de
// stock_before/stock_after dentro de la transacción y append al libro. El
// movimiento y los saldos se comprometen juntos o se revierten juntos.
type AdjustmentUseCase struct {
	txRunner     TxRunner
	medicineRepo repository.MedicineRepository
	catalog      CatalogInvalidator // puede ser nil
}

// NewAdjustmentUseCase construye el motor de ajustes.
func NewAdjustmentUseCase(txRunner TxRunner, medicineRepo repository.MedicineRepository, catalog CatalogInvalidator) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, medicineRepo: medicineRepo, catalog: catalog}
}

// SubmitAdjustment valida y aplica un ajuste manual. Devuelve el movimiento
// creado; el cliente nunca recalcula stock_after por su cuenta.
func (uc *AdjustmentUseCase) SubmitAdjustment(ctx context.Context, in dto.StockAdjustmentRequest, userID string) (*dto.StockMovementDTO, error) {
	switch in.AdjustmentType {
	case ledger.AdjustmentPlus, ledger.AdjustmentMinus:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.MedicineID <= 0 || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if !ledger.IsValidReason(in.AdjustmentType, in.Reason) {
		return nil, domain.ErrInvalidReason
	}

	// Existencia del medicamento antes de abrir la transacción.
	medicine, err := uc.medicineRepo.GetByID(ctx, in.MedicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	movType := ledger.MovementTypeFor(in.AdjustmentType)

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		medicineRepo repository.MedicineRepository,
		batchRepo repository.MedicineBatchRepository,
	) error {
		// Bloquea la fila del medicamento; stock_before sale de la fila bloqueada.
		med, err := medicineRepo.GetForUpdate(ctx, in.MedicineID)
		if err != nil {
			return err
		}
		if med == nil {
			return domain.ErrNotFound
		}
		if movType == entity.MovementTypeOut && med.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		if in.BatchID != nil {
			if err := applyToBatch(ctx, batchRepo, *in.BatchID, in.MedicineID, in.Quantity, movType); err != nil {
				return err
			}
		}

		stockBefore := med.Stock
		stockAfter := ledger.ApplyQuantity(stockBefore, in.Quantity, movType)
		if err := medicineRepo.UpdateStock(ctx, in.MedicineID, stockAfter); err != nil {
			return err
		}

		seq, err := movRepo.NextSequence(ctx)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			MovementNumber: ledger.FormatMovementNumber(seq, now),
			MedicineID:     in.MedicineID,
			BatchID:        in.BatchID,
			Type:           movType,
			Reason:         in.Reason,
			Quantity:       in.Quantity,
			Unit:           med.Unit,
			StockBefore:    stockBefore,
			StockAfter:     stockAfter,
			Notes:          in.Notes,
			MovementDate:   now,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El catálogo cacheado quedó detrás del libro; descartarlo tras el commit.
	if uc.catalog != nil {
		uc.catalog.InvalidateCache(ctx)
	}

	out := dto.ToStockMovementDTO(created)
	return &out, nil
}

// applyToBatch bloquea el lote y ajusta su cantidad restante. Un ajuste negativo
// exige cantidad suficiente en el lote; uno positivo no puede dejar el lote por
// encima de lo recibido (Quantity <= ReceivedQty).
func applyToBatch(ctx context.Context, batchRepo repository.MedicineBatchRepository, batchID, medicineID, quantity int64, movType string) error {
	batch, err := batchRepo.GetForUpdate(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	if batch.MedicineID != medicineID {
		return domain.ErrBatchMismatch
	}
	var newQty int64
	if movType == entity.MovementTypeOut {
		if batch.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		newQty = batch.Quantity - quantity
	} else {
		newQty = batch.Quantity + quantity
		if newQty > batch.ReceivedQty {
			return domain.ErrBatchOverReceived
		}
	}
	return batchRepo.UpdateQuantity(ctx, batchID, newQty)
}
