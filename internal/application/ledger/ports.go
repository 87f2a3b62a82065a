package ledger

import (
	"context"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ajustes:
// el movimiento y los saldos de medicamento/lote se comprometen juntos o nunca.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		medicineRepo repository.MedicineRepository,
		batchRepo repository.MedicineBatchRepository,
	) error) error
}
