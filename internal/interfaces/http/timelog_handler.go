package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/usecase"
	"github.com/jhoicas/Caja-api/internal/domain"
)

// TimeLogHandler maneja marcaciones de jornada del operador autenticado.
type TimeLogHandler struct {
	uc *usecase.TimeLogUseCase
}

// NewTimeLogHandler construye el handler de marcaciones.
func NewTimeLogHandler(uc *usecase.TimeLogUseCase) *TimeLogHandler {
	return &TimeLogHandler{uc: uc}
}

// ClockIn godoc
// @Summary      Marcar entrada
// @Tags         timelog
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.TimeLogResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/timelog/clock-in [post]
func (h *TimeLogHandler) ClockIn(c *fiber.Ctx) error {
	out, err := h.uc.ClockIn(GetUserID(c))
	if err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CLOCKED_IN", Message: "ya hay una marcación abierta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClockOut godoc
// @Summary      Marcar salida
// @Tags         timelog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TimeLogResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/timelog/clock-out [post]
func (h *TimeLogHandler) ClockOut(c *fiber.Ctx) error {
	out, err := h.uc.ClockOut(GetUserID(c))
	if err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CLOCKED_IN", Message: "no hay marcación abierta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar marcaciones propias
// @Tags         timelog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TimeLogListResponse
// @Router       /api/timelog [get]
func (h *TimeLogHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByUser(GetUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
