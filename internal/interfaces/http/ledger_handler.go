package http

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/ledger"
)

// LedgerHandler maneja el libro de movimientos: consulta paginada, estadísticas,
// tarjeta de stock y registro de ajustes manuales (protegido).
type LedgerHandler struct {
	query      *ledger.QueryUseCase
	stockCard  *ledger.StockCardUseCase
	adjustment *ledger.AdjustmentUseCase
	validate   *validator.Validate
}

// NewLedgerHandler construye el handler del libro.
func NewLedgerHandler(query *ledger.QueryUseCase, stockCard *ledger.StockCardUseCase, adjustment *ledger.AdjustmentUseCase) *LedgerHandler {
	return &LedgerHandler{
		query:      query,
		stockCard:  stockCard,
		adjustment: adjustment,
		validate:   validator.New(),
	}
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Description  Página de movimientos (más reciente primero) con filtros por
//	tipo, motivo, medicamento, rango de fechas y búsqueda por número.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Coincide contra movement_number"
// @Param        movement_type  query  string  false  "in | out"
// @Param        reason         query  string  false  "Motivo"
// @Param        medicine_id    query  int     false  "ID del medicamento"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD"
// @Param        page           query  int     false  "Página (1-indexada)"
// @Param        per_page       query  int     false  "Tamaño de página (default 20, máx 100)"
// @Success      200  {object}  dto.MovementPageDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var req dto.MovementQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page, err := h.query.QueryMovements(c.Context(), req)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(page)
}

// GetStats godoc
// @Summary      Estadísticas del libro de movimientos
// @Description  Agregados para una ventana móvil. Endpoint separado del listado
//	a propósito: cada proyección carga por su cuenta.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int  false  "Ventana en días (default 30)"
// @Success      200  {object}  dto.MovementStatsDTO
// @Router       /api/stock-movements/stats [get]
func (h *LedgerHandler) GetStats(c *fiber.Ctx) error {
	periodDays, _ := strconv.Atoi(c.Query("period_days"))
	stats, err := h.query.GetStats(c.Context(), periodDays)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(stats)
}

// GetStockCard godoc
// @Summary      Tarjeta de stock de un medicamento
// @Description  Historial cronológico completo + saldo vivo. Un medicamento sin
//	movimientos devuelve movements vacío, no error.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del medicamento"
// @Success      200  {object}  dto.StockCardDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/stock-card [get]
func (h *LedgerHandler) GetStockCard(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de medicamento inválido"})
	}
	card, err := h.stockCard.GetStockCard(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(card)
}

// SubmitAdjustment godoc
// @Summary      Registrar ajuste manual de stock
// @Description  Único camino de escritura del libro expuesto aquí. Transaccional:
//	movimiento y saldos se comprometen juntos.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "medicine_id, medicine_batch_id?, adjustment_type, quantity, reason, notes?"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-adjustments [post]
func (h *LedgerHandler) SubmitAdjustment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	mov, err := h.adjustment.SubmitAdjustment(c.Context(), in, userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}
