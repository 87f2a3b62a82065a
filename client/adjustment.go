package client

import (
	"context"
	"errors"
	"sync"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/ledger"
)

// Errores de validación local del formulario de ajuste. Se devuelven antes de
// tocar la red; el servidor revalida todo al recibir el request.
var (
	ErrFormClosed         = errors.New("el formulario de ajuste está cerrado")
	ErrInvalidType        = errors.New("tipo de ajuste desconocido")
	ErrSubmitInProgress   = errors.New("ya hay un envío en curso")
	ErrNoMedicineSelected = errors.New("debe seleccionar un medicamento")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un entero positivo")
	ErrInvalidReason      = errors.New("el motivo no pertenece al tipo de ajuste")
	ErrBatchNotAllowed    = errors.New("el lote solo aplica a ajustes de salida")
	ErrUnknownBatch       = errors.New("el lote no pertenece al medicamento seleccionado")
)

// AdjustmentForm es el estado del formulario de ajuste de inventario. Modela la
// transición idle → submitting → {reset | error} y las reglas de dependencia
// entre campos: el motivo depende del tipo, el lote depende del medicamento y
// solo se ofrece en ajustes de salida.
//
// Tras un envío exitoso el formulario se resetea, se cierra y se disparan los
// callbacks de refresco una sola vez cada uno. Tras un fallo queda abierto con
// los valores intactos para corregir y reenviar.
type AdjustmentForm struct {
	mu sync.Mutex

	client *Client

	onMovementsChanged func()
	onStatsChanged     func()

	open       bool
	submitting bool

	medicine *dto.MedicineDTO
	batches  []dto.MedicineBatchDTO

	adjustmentType string
	reason         string
	batchID        *int64
	quantity       int64
	notes          string
}

// FormHooks callbacks de refresco tras un ajuste exitoso. Ambos opcionales.
type FormHooks struct {
	OnMovementsChanged func()
	OnStatsChanged     func()
}

// NewAdjustmentForm crea el formulario cerrado, con tipo de salida por defecto.
func NewAdjustmentForm(c *Client, hooks FormHooks) *AdjustmentForm {
	f := &AdjustmentForm{
		client:             c,
		onMovementsChanged: hooks.OnMovementsChanged,
		onStatsChanged:     hooks.OnStatsChanged,
	}
	f.resetLocked()
	return f
}

// Open abre el formulario en estado limpio.
func (f *AdjustmentForm) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.open = true
}

// Close cierra el formulario descartando lo capturado.
func (f *AdjustmentForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// IsOpen indica si el formulario está abierto.
func (f *AdjustmentForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// IsSubmitting indica si hay un envío en curso.
func (f *AdjustmentForm) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// resetLocked vuelve al estado inicial: tipo minus, motivo por defecto del tipo,
// sin medicamento ni lote. Requiere f.mu tomado.
func (f *AdjustmentForm) resetLocked() {
	f.open = false
	f.submitting = false
	f.medicine = nil
	f.batches = nil
	f.adjustmentType = ledger.AdjustmentMinus
	f.reason = ledger.DefaultReasonFor(ledger.AdjustmentMinus)
	f.batchID = nil
	f.quantity = 0
	f.notes = ""
}

// SetAdjustmentType cambia el tipo de ajuste. El motivo se resetea siempre al
// por defecto del nuevo tipo; en ajustes de entrada se descarta el lote porque
// el formulario no lo ofrece.
func (f *AdjustmentForm) SetAdjustmentType(t string) error {
	if t != ledger.AdjustmentPlus && t != ledger.AdjustmentMinus {
		return ErrInvalidType
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustmentType = t
	f.reason = ledger.DefaultReasonFor(t)
	if t == ledger.AdjustmentPlus {
		f.batchID = nil
	}
	return nil
}

// AdjustmentType devuelve el tipo de ajuste actual.
func (f *AdjustmentForm) AdjustmentType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adjustmentType
}

// Reason devuelve el motivo actual.
func (f *AdjustmentForm) Reason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reason
}

// ReasonOptions devuelve los motivos válidos para el tipo de ajuste actual.
// El conjunto es función del tipo y nada más.
func (f *AdjustmentForm) ReasonOptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ledger.ValidReasonsFor(f.adjustmentType)
}

// SetReason fija el motivo. Debe pertenecer al conjunto válido del tipo actual.
func (f *AdjustmentForm) SetReason(reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !ledger.IsValidReason(f.adjustmentType, reason) {
		return ErrInvalidReason
	}
	f.reason = reason
	return nil
}

// SetMedicine selecciona el medicamento, descarta cualquier lote previo (los
// lotes no son comparables entre medicamentos) y trae la lista de lotes del
// nuevo medicamento en un único fetch.
func (f *AdjustmentForm) SetMedicine(ctx context.Context, m dto.MedicineDTO) error {
	f.mu.Lock()
	f.medicine = &m
	f.batchID = nil
	f.batches = nil
	f.mu.Unlock()

	batches, err := f.client.ListBatches(ctx, m.ID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	// Si el usuario cambió de medicamento mientras cargaba, descartamos.
	if f.medicine == nil || f.medicine.ID != m.ID {
		return nil
	}
	f.batches = batches
	return nil
}

// Medicine devuelve el medicamento seleccionado (nil si no hay).
func (f *AdjustmentForm) Medicine() *dto.MedicineDTO {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.medicine
}

// Batches devuelve los lotes del medicamento seleccionado, orden de vencimiento
// ascendente tal como los entrega el servidor.
func (f *AdjustmentForm) Batches() []dto.MedicineBatchDTO {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches
}

// SetBatch selecciona un lote. Solo aplica en ajustes de salida y el lote debe
// estar en la lista traída para el medicamento actual.
func (f *AdjustmentForm) SetBatch(batchID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adjustmentType != ledger.AdjustmentMinus {
		return ErrBatchNotAllowed
	}
	for i := range f.batches {
		if f.batches[i].ID == batchID {
			id := batchID
			f.batchID = &id
			return nil
		}
	}
	return ErrUnknownBatch
}

// ClearBatch descarta la selección de lote.
func (f *AdjustmentForm) ClearBatch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchID = nil
}

// BatchID devuelve el lote seleccionado (nil si no hay).
func (f *AdjustmentForm) BatchID() *int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batchID
}

// SetQuantity fija la cantidad a ajustar.
func (f *AdjustmentForm) SetQuantity(q int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quantity = q
}

// SetNotes fija las notas libres.
func (f *AdjustmentForm) SetNotes(notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = notes
}

// Validate aplica las reglas locales sin tocar la red.
func (f *AdjustmentForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *AdjustmentForm) validateLocked() error {
	if f.medicine == nil || f.medicine.ID <= 0 {
		return ErrNoMedicineSelected
	}
	if f.quantity < 1 {
		return ErrInvalidQuantity
	}
	if !ledger.IsValidReason(f.adjustmentType, f.reason) {
		return ErrInvalidReason
	}
	return nil
}

// Submit valida localmente y envía el ajuste. Si la validación local falla no
// se hace ninguna petición. En éxito dispara los callbacks de refresco (uno
// cada uno), resetea y cierra el formulario, y devuelve el movimiento creado.
// En fallo el formulario queda abierto con los valores intactos y el flag de
// envío se limpia siempre.
func (f *AdjustmentForm) Submit(ctx context.Context) (*dto.StockMovementDTO, error) {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true
	req := dto.StockAdjustmentRequest{
		MedicineID:     f.medicine.ID,
		BatchID:        f.batchID,
		AdjustmentType: f.adjustmentType,
		Quantity:       f.quantity,
		Reason:         f.reason,
		Notes:          f.notes,
	}
	f.mu.Unlock()

	var movement dto.StockMovementDTO
	err := f.client.post(ctx, "/api/stock-adjustments", req, &movement)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.resetLocked()
	f.mu.Unlock()

	if f.onMovementsChanged != nil {
		f.onMovementsChanged()
	}
	if f.onStatsChanged != nil {
		f.onStatsChanged()
	}
	return &movement, nil
}
