package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/risk"
)

// RiskHandler expone los perfiles de riesgo (solo lectura, roles de supervisión).
type RiskHandler struct {
	uc *risk.ScoringUseCase
}

// NewRiskHandler construye el handler de riesgo.
func NewRiskHandler(uc *risk.ScoringUseCase) *RiskHandler {
	return &RiskHandler{uc: uc}
}

// List godoc
// @Summary      Listar perfiles de riesgo
// @Tags         risk
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RiskProfileListResponse
// @Router       /api/risk/profiles [get]
func (h *RiskHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListProfiles(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetProfile godoc
// @Summary      Perfil de riesgo de un operador
// @Tags         risk
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del operador"
// @Success      200  {object}  dto.RiskProfileResponse
// @Router       /api/risk/profiles/{id} [get]
func (h *RiskHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Replay godoc
// @Summary      Reconstruir score desde la trilla
// @Description  Recalcula el score del operador desde cero con sus eventos; debe
// @Description  coincidir con el score acumulado.
// @Tags         risk
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del operador"
// @Success      200  {object}  map[string]int
// @Router       /api/risk/profiles/{id}/replay [get]
func (h *RiskHandler) Replay(c *fiber.Ctx) error {
	operatorID := c.Params("id")
	score, err := h.uc.Replay(operatorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"operator_id": operatorID, "score": score})
}
