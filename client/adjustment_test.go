package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
)

// formFixture agrupa el formulario, los contadores del servidor stub y los
// contadores de los callbacks de refresco.
type formFixture struct {
	form *AdjustmentForm

	batchFetches int32
	adjustPosts  int32
	lastRequest  dto.StockAdjustmentRequest

	movementRefreshes int32
	statsRefreshes    int32

	adjustStatus int
	adjustError  dto.ErrorResponse
}

func newFormFixture(t *testing.T) *formFixture {
	t.Helper()
	fx := &formFixture{adjustStatus: http.StatusCreated}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/medicines/{id}/batches", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fx.batchFetches, 1)
		switch r.PathValue("id") {
		case "7":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"total": 2,
				"data": []dto.MedicineBatchDTO{
					{ID: 3, MedicineID: 7, BatchNumber: "BN-2026-01", Quantity: 12, ReceivedQty: 30},
					{ID: 5, MedicineID: 7, BatchNumber: "BN-2026-02", Quantity: 20, ReceivedQty: 20},
				},
			})
		default:
			writeJSON(t, w, http.StatusOK, map[string]any{"total": 0, "data": []dto.MedicineBatchDTO{}})
		}
	})
	mux.HandleFunc("POST /api/stock-adjustments", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fx.adjustPosts, 1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fx.lastRequest))
		if fx.adjustStatus >= 400 {
			writeJSON(t, w, fx.adjustStatus, fx.adjustError)
			return
		}
		writeJSON(t, w, http.StatusCreated, dto.StockMovementDTO{
			ID:             101,
			MovementNumber: "MV-20260830-000101",
			MedicineID:     fx.lastRequest.MedicineID,
			BatchID:        fx.lastRequest.BatchID,
			Type:           "out",
			Reason:         fx.lastRequest.Reason,
			Quantity:       fx.lastRequest.Quantity,
			StockBefore:    40,
			StockAfter:     35,
		})
	})

	c := newTestClient(t, mux)
	fx.form = NewAdjustmentForm(c, FormHooks{
		OnMovementsChanged: func() { atomic.AddInt32(&fx.movementRefreshes, 1) },
		OnStatsChanged:     func() { atomic.AddInt32(&fx.statsRefreshes, 1) },
	})
	return fx
}

func medicine7() dto.MedicineDTO {
	return dto.MedicineDTO{ID: 7, Code: "MED-007", Name: "Amoxicilina 500mg", Unit: "strip", Stock: 40, StockStatus: "normal"}
}

// Los motivos ofrecidos son función exacta del tipo de ajuste.
func TestReasonOptions_SonFuncionDelTipo(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()

	require.NoError(t, fx.form.SetAdjustmentType("plus"))
	assert.Equal(t, []string{"adjustment_plus", "return_patient", "initial_stock", "other"},
		fx.form.ReasonOptions())

	require.NoError(t, fx.form.SetAdjustmentType("minus"))
	assert.Equal(t, []string{"adjustment_minus", "expired", "damage", "return_supplier", "other"},
		fx.form.ReasonOptions())
}

// Cambiar de tipo resetea el motivo al default del nuevo tipo, siempre.
func TestCambioDeTipo_ReseteaMotivo(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()

	require.NoError(t, fx.form.SetReason("damage"))
	assert.Equal(t, "damage", fx.form.Reason())

	require.NoError(t, fx.form.SetAdjustmentType("plus"))
	assert.Equal(t, "adjustment_plus", fx.form.Reason())

	require.NoError(t, fx.form.SetAdjustmentType("minus"))
	assert.Equal(t, "adjustment_minus", fx.form.Reason())

	// Idempotente bajo cambios repetidos
	require.NoError(t, fx.form.SetAdjustmentType("minus"))
	assert.Equal(t, "adjustment_minus", fx.form.Reason())
}

func TestSetReason_MotivoDeOtroConjunto_Rechazado(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()

	// tipo minus: initial_stock pertenece al conjunto de plus
	assert.ErrorIs(t, fx.form.SetReason("initial_stock"), ErrInvalidReason)
	assert.ErrorIs(t, fx.form.SetReason("sales"), ErrInvalidReason)
	assert.Equal(t, "adjustment_minus", fx.form.Reason(), "el motivo no debe cambiar tras un rechazo")
}

// Seleccionar medicamento dispara exactamente un fetch de lotes y descarta el
// lote previo.
func TestSetMedicine_TraeLotesUnaVez(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()

	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.batchFetches))
	require.Len(t, fx.form.Batches(), 2)

	require.NoError(t, fx.form.SetBatch(3))
	require.NotNil(t, fx.form.BatchID())

	// Cambiar de medicamento limpia el lote y vuelve a traer la lista
	other := dto.MedicineDTO{ID: 9, Code: "MED-009", Name: "Ibuprofeno 400mg", Unit: "strip", Stock: 15}
	require.NoError(t, fx.form.SetMedicine(context.Background(), other))
	assert.Equal(t, int32(2), atomic.LoadInt32(&fx.batchFetches))
	assert.Nil(t, fx.form.BatchID(), "el lote no es comparable entre medicamentos")
	assert.Empty(t, fx.form.Batches())
}

func TestSetBatch_SoloDisponibleEnSalidas(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))

	require.NoError(t, fx.form.SetAdjustmentType("plus"))
	assert.ErrorIs(t, fx.form.SetBatch(3), ErrBatchNotAllowed)

	require.NoError(t, fx.form.SetAdjustmentType("minus"))
	require.NoError(t, fx.form.SetBatch(3))
	assert.ErrorIs(t, fx.form.SetBatch(999), ErrUnknownBatch)
}

// Cambiar a entrada descarta la selección de lote.
func TestCambioAPlus_DescartaLote(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	require.NoError(t, fx.form.SetBatch(3))

	require.NoError(t, fx.form.SetAdjustmentType("plus"))
	assert.Nil(t, fx.form.BatchID())
}

// La validación local rechaza antes de cualquier petición de red.
func TestSubmit_ValidacionLocal_NoTocaLaRed(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()

	// Sin medicamento
	fx.form.SetQuantity(5)
	_, err := fx.form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoMedicineSelected)

	// Cantidad en cero
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	fx.form.SetQuantity(0)
	_, err = fx.form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Cantidad negativa
	fx.form.SetQuantity(-3)
	_, err = fx.form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fx.adjustPosts),
		"las validaciones locales no deben generar peticiones")
	assert.True(t, fx.form.IsOpen(), "el formulario sigue abierto tras un rechazo local")
}

// Envío exitoso: un POST, un refresco de movimientos, un refresco de stats,
// formulario reseteado y cerrado.
func TestSubmit_Exitoso_RefrescaYCierra(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	require.NoError(t, fx.form.SetReason("damage"))
	require.NoError(t, fx.form.SetBatch(3))
	fx.form.SetQuantity(5)
	fx.form.SetNotes("caja dañada en bodega")

	movement, err := fx.form.Submit(context.Background())
	require.NoError(t, err)

	// Un solo POST con el payload capturado
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.adjustPosts))
	assert.Equal(t, int64(7), fx.lastRequest.MedicineID)
	assert.Equal(t, "minus", fx.lastRequest.AdjustmentType)
	assert.Equal(t, "damage", fx.lastRequest.Reason)
	assert.Equal(t, int64(5), fx.lastRequest.Quantity)
	require.NotNil(t, fx.lastRequest.BatchID)
	assert.Equal(t, int64(3), *fx.lastRequest.BatchID)
	assert.Equal(t, "caja dañada en bodega", fx.lastRequest.Notes)

	// El movimiento devuelto viene del servidor, sin recomputar nada local
	assert.Equal(t, "MV-20260830-000101", movement.MovementNumber)
	assert.Equal(t, int64(35), movement.StockAfter)

	// Exactamente un refresco de cada componente
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.movementRefreshes))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fx.statsRefreshes))

	// Reseteado y cerrado
	assert.False(t, fx.form.IsOpen())
	assert.False(t, fx.form.IsSubmitting())
	assert.Nil(t, fx.form.Medicine())
	assert.Nil(t, fx.form.BatchID())
}

// Envío fallido: mensaje del servidor tal cual, formulario abierto con los
// valores intactos y flag de envío limpio.
func TestSubmit_Fallido_FormularioSigueAbierto(t *testing.T) {
	fx := newFormFixture(t)
	fx.adjustStatus = http.StatusConflict
	fx.adjustError = dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"}

	fx.form.Open()
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	require.NoError(t, fx.form.SetReason("damage"))
	fx.form.SetQuantity(500)

	_, err := fx.form.Submit(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "stock insuficiente para la salida", apiErr.Message)

	// Sin refrescos y con el formulario listo para corregir y reenviar
	assert.Equal(t, int32(0), atomic.LoadInt32(&fx.movementRefreshes))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fx.statsRefreshes))
	assert.True(t, fx.form.IsOpen())
	assert.False(t, fx.form.IsSubmitting(), "el flag de envío se limpia siempre")
	require.NotNil(t, fx.form.Medicine())
	assert.Equal(t, int64(7), fx.form.Medicine().ID)
	assert.Equal(t, "damage", fx.form.Reason())
}

func TestSubmit_FormularioCerrado(t *testing.T) {
	fx := newFormFixture(t)
	_, err := fx.form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormClosed)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fx.adjustPosts))
}

// Abrir de nuevo tras un envío exitoso parte de un estado limpio.
func TestOpen_TrasExito_EstadoLimpio(t *testing.T) {
	fx := newFormFixture(t)
	fx.form.Open()
	require.NoError(t, fx.form.SetMedicine(context.Background(), medicine7()))
	fx.form.SetQuantity(2)
	_, err := fx.form.Submit(context.Background())
	require.NoError(t, err)

	fx.form.Open()
	assert.True(t, fx.form.IsOpen())
	assert.Nil(t, fx.form.Medicine())
	assert.Equal(t, "minus", fx.form.AdjustmentType())
	assert.Equal(t, "adjustment_minus", fx.form.Reason())
	assert.Empty(t, fx.form.Batches())
}
