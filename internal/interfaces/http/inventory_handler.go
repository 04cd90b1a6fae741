package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
	"github.com/jhoicas/Caja-api/internal/domain"
)

// InventoryHandler maneja mutaciones de stock fuera de ventas: reabastecimiento
// y ajustes manuales (protegido, requiere rol con permiso de inventario).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Availability godoc
// @Summary      Consultar stock disponible
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]int
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/availability [get]
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	id := c.Params("id")
	available, err := h.uc.GetAvailable(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"product_id": id, "available": available})
}

// Restock godoc
// @Summary      Reabastecer stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RestockRequest  true  "Cantidad a ingresar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Restock(c.Context(), id, in.Quantity, GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser negativa"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajuste manual de stock (auditado)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta y motivo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	err := h.uc.AdjustStock(c.Context(), id, in.Delta, in.Reason, GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta no puede ser cero"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
