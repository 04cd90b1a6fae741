package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/audit"
	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/infrastructure/export"
)

// AuditHandler maneja la trilla de auditoría: consulta, flag de acciones
// sensibles y exportación.
type AuditHandler struct {
	uc *audit.TrailUseCase
}

// NewAuditHandler construye el handler de auditoría.
func NewAuditHandler(uc *audit.TrailUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar trilla de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Param        operator  query  string  false  "Filtrar por operador"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audit/events [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	var out *dto.AuditListResponse
	var err error
	if operatorID := c.Query("operator"); operatorID != "" {
		out, err = h.uc.ListByOperator(operatorID, limit, offset)
	} else {
		out, err = h.uc.List(limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Flag godoc
// @Summary      Registrar acción sensible del PDV
// @Description  Deja en la trilla un override de precio, cancelación o devolución.
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FlagActionRequest  true  "Acción y severidad"
// @Success      201   {object}  dto.AuditEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/audit/events [post]
func (h *AuditHandler) Flag(c *fiber.Ctx) error {
	var in dto.FlagActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OperatorID == "" {
		in.OperatorID = GetUserID(c)
	}
	out, err := h.uc.FlagAction(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action o severity fuera del catálogo permitido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar trilla a CSV
// @Tags         audit
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/audit/events/export.csv [get]
func (h *AuditHandler) ExportCSV(c *fiber.Ctx) error {
	events, err := h.uc.Events(100000, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	csv, err := export.AuditTrailCSV(events)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="auditoria.csv"`)
	return c.SendString(csv)
}

// ExportXML godoc
// @Summary      Exportar trilla a XML
// @Tags         audit
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {string}  string
// @Router       /api/audit/events/export.xml [get]
func (h *AuditHandler) ExportXML(c *fiber.Ctx) error {
	events, err := h.uc.Events(100000, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	xml, err := export.AuditTrailXML(events)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="auditoria.xml"`)
	return c.SendString(xml)
}
