package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
)

// POSHandler maneja el punto de venta: finalización de ventas.
type POSHandler struct {
	uc *sales.CheckoutUseCase
}

// NewPOSHandler construye el handler del PDV.
func NewPOSHandler(uc *sales.CheckoutUseCase) *POSHandler {
	return &POSHandler{uc: uc}
}

// Finalize godoc
// @Summary      Finalizar venta
// @Description  Valida el carrito, descuenta stock y registra la venta en la
// @Description  sesión de caja, todo en una sola transacción.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeSaleRequest  true  "Sesión, medio de pago y líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/sales [post]
func (h *POSHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "session_id es requerido"})
	}
	cart, err := h.uc.BuildCart(in.Lines)
	if err != nil {
		return mapSaleError(c, err)
	}
	out, err := h.uc.Finalize(c.Context(), cart, in.SessionID, GetUserID(c), in.PaymentMethod)
	if err != nil {
		return mapSaleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func mapSaleError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrEmptyCart:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito no tiene líneas"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de venta inválidos"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para una o más líneas"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o sesión no encontrados"})
	case domain.ErrSessionNotOpen:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_OPEN", Message: "la sesión de caja no está abierta"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
