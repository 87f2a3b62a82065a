package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/catalog"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/dto"
)

// CatalogHandler lecturas del catálogo de medicamentos (protegido).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListMedicines godoc
// @Summary      Listar medicamentos activos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por nombre o código"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/medicines [get]
func (h *CatalogHandler) ListMedicines(c *fiber.Ctx) error {
	list, err := h.uc.ListActiveMedicines(c.Context(), c.Query("search"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"data":  list,
	})
}

// ListBatches godoc
// @Summary      Listar lotes de un medicamento
// @Description  Ordenados por vencimiento ascendente (el que vence primero, primero).
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del medicamento"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/batches [get]
func (h *CatalogHandler) ListBatches(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de medicamento inválido"})
	}
	list, err := h.uc.ListBatches(c.Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"data":  list,
	})
}
