package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/audit"
	"github.com/jhoicas/Caja-api/internal/application/auth"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
	"github.com/jhoicas/Caja-api/internal/application/register"
	"github.com/jhoicas/Caja-api/internal/application/risk"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/application/usecase"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
	"github.com/jhoicas/Caja-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	LedgerUC   *inventory.LedgerUseCase
	CheckoutUC *sales.CheckoutUseCase
	SessionUC  *register.SessionUseCase
	AuditUC    *audit.TrailUseCase
	RiskUC     *risk.ScoringUseCase
	TimeLogUC  *usecase.TimeLogUseCase
	UserRepo   repository.UserRepository
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	manage := RequireRole(entity.RoleOwner, entity.RoleManager)
	supervise := RequireRole(entity.RoleOwner, entity.RoleManager, entity.RoleAuditor)
	sell := RequireRole(entity.RoleOwner, entity.RoleManager, entity.RoleCashier)

	// Products (lectura para todos los roles; escritura para gestión)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/export.csv", supervise, productHandler.ExportCSV)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manage, productHandler.Create)
	products.Put("/:id", manage, productHandler.Update)

	// Inventory (reabastecimiento y ajustes: gestión)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Get("/:id/availability", inventoryHandler.Availability)
	invGroup.Post("/:id/restock", manage, inventoryHandler.Restock)
	invGroup.Post("/:id/adjust", manage, inventoryHandler.Adjust)

	// POS (venta: cajeros y gestión)
	pos := protected.Group("/pos", sell)
	posHandler := NewPOSHandler(deps.CheckoutUC)
	pos.Post("/sales", posHandler.Finalize)

	// Register sessions
	reg := protected.Group("/register/sessions")
	registerHandler := NewRegisterHandler(deps.SessionUC, deps.UserRepo, pdf.NewClosingReportGenerator())
	reg.Post("/", sell, registerHandler.Open)
	reg.Post("/:id/close", sell, registerHandler.Close)
	reg.Get("/open", supervise, registerHandler.ListOpen)
	reg.Get("/closed", supervise, registerHandler.ListClosed)
	reg.Get("/:id/report.pdf", supervise, registerHandler.Report)
	reg.Get("/:id", registerHandler.GetByID)

	// Audit trail (consulta y exportación: supervisión; flag: cualquier operador)
	auditGroup := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup.Post("/events", auditHandler.Flag)
	auditGroup.Get("/events", supervise, auditHandler.List)
	auditGroup.Get("/events/export.csv", supervise, auditHandler.ExportCSV)
	auditGroup.Get("/events/export.xml", supervise, auditHandler.ExportXML)

	// Risk profiles (solo supervisión)
	riskGroup := protected.Group("/risk", supervise)
	riskHandler := NewRiskHandler(deps.RiskUC)
	riskGroup.Get("/profiles", riskHandler.List)
	riskGroup.Get("/profiles/:id", riskHandler.GetProfile)
	riskGroup.Get("/profiles/:id/replay", riskHandler.Replay)

	// Time logs (cada operador sobre sí mismo)
	timelog := protected.Group("/timelog")
	timelogHandler := NewTimeLogHandler(deps.TimeLogUC)
	timelog.Post("/clock-in", timelogHandler.ClockIn)
	timelog.Post("/clock-out", timelogHandler.ClockOut)
	timelog.Get("/", timelogHandler.List)
}
