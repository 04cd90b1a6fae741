package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/register"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
	"github.com/jhoicas/Caja-api/internal/infrastructure/pdf"
)

// RegisterHandler maneja el ciclo de vida de las sesiones de caja.
type RegisterHandler struct {
	uc       *register.SessionUseCase
	userRepo repository.UserRepository
	report   *pdf.ClosingReportGenerator
}

// NewRegisterHandler construye el handler de cajas.
func NewRegisterHandler(uc *register.SessionUseCase, userRepo repository.UserRepository, report *pdf.ClosingReportGenerator) *RegisterHandler {
	return &RegisterHandler{uc: uc, userRepo: userRepo, report: report}
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Tags         register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenRegisterRequest  true  "Caja y fondo inicial"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register/sessions [post]
func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RegisterName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "register_name es requerido"})
	}
	out, err := h.uc.Open(GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrRegisterAlreadyOpen:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REGISTER_OPEN", Message: "la caja ya tiene una sesión abierta"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el fondo inicial no puede ser negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar sesión de caja (conciliación)
// @Description  Compara los totales contados contra los esperados; una
// @Description  divergencia sobre el umbral deja un evento en la trilla.
// @Tags         register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseRegisterRequest  true  "Totales contados"
// @Success      200   {object}  dto.ClosingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register/sessions/{id}/close [post]
func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CloseRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), id, in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		case domain.ErrSessionNotOpen:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_OPEN", Message: "la sesión ya está cerrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener sesión por ID
// @Tags         register
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/register/sessions/{id} [get]
func (h *RegisterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	}
	return c.JSON(out)
}

// ListOpen godoc
// @Summary      Listar sesiones abiertas
// @Tags         register
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/register/sessions/open [get]
func (h *RegisterHandler) ListOpen(c *fiber.Ctx) error {
	out, err := h.uc.ListOpen()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListClosed godoc
// @Summary      Listar cierres recientes
// @Tags         register
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {object}  dto.SessionListResponse
// @Router       /api/register/sessions/closed [get]
func (h *RegisterHandler) ListClosed(c *fiber.Ctx) error {
	out, err := h.uc.ListRecentClosed(c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Comprobante PDF de cierre
// @Tags         register
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/register/sessions/{id}/report.pdf [get]
func (h *RegisterHandler) Report(c *fiber.Ctx) error {
	session, err := h.uc.Session(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	}
	if session.IsOpen() {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_OPEN", Message: "la sesión todavía no cierra"})
	}
	operator, err := h.userRepo.GetByID(session.OperatorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	bytes, err := h.report.Generate(session, operator)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cierre-`+session.ID+`.pdf"`)
	return c.Send(bytes)
}
