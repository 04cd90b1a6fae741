package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/audit"
	"github.com/jhoicas/Caja-api/internal/application/auth"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
	appregister "github.com/jhoicas/Caja-api/internal/application/register"
	apprisk "github.com/jhoicas/Caja-api/internal/application/risk"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/application/usecase"
	domregister "github.com/jhoicas/Caja-api/internal/domain/register"
	domrisk "github.com/jhoicas/Caja-api/internal/domain/risk"
	"github.com/jhoicas/Caja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Caja-api/internal/interfaces/http"
	"github.com/jhoicas/Caja-api/pkg/config"
	"github.com/jhoicas/Caja-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditEventRepository(pool)
	profileRepo := postgres.NewRiskProfileRepository(pool)
	timeLogRepo := postgres.NewTimeLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Bus in-process: publish síncrono, los eventos de un operador llegan en orden.
	bus := EventBus.New()

	threshold, err := decimal.NewFromString(cfg.Policy.DiscrepancyThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("umbral de divergencia inválido")
	}
	policy := domregister.Policy{DiscrepancyThreshold: threshold}
	weights := domrisk.Weights{
		Low:    cfg.Policy.RiskWeightLow,
		Medium: cfg.Policy.RiskWeightMedium,
		High:   cfg.Policy.RiskWeightHigh,
	}
	bands := domrisk.Bands{
		Medium:   cfg.Policy.RiskBandMedium,
		Critical: cfg.Policy.RiskBandCritical,
	}

	auditUC := audit.NewTrailUseCase(auditRepo, bus)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, productRepo, bus)
	checkoutUC := sales.NewCheckoutUseCase(txRunner, productRepo, bus)
	sessionUC := appregister.NewSessionUseCase(txRunner, sessionRepo, bus, policy)
	riskUC := apprisk.NewScoringUseCase(profileRepo, auditRepo, weights, bands, cfg.Policy.RiskDecayPerDay, log)
	if err := riskUC.SubscribeTo(bus); err != nil {
		log.Fatal().Err(err).Msg("suscribir motor de riesgo al bus")
	}

	productUC := usecase.NewProductUseCase(productRepo)
	timeLogUC := usecase.NewTimeLogUseCase(timeLogRepo)
	authUC := auth.NewAuthUseCase(userRepo, auditUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Enfriamiento diario de scores de riesgo.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := riskUC.DecayAll(time.Now()); err != nil {
			log.Error().Err(err).Msg("enfriamiento de scores")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("programar enfriamiento de scores")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caja API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		LedgerUC:   ledgerUC,
		CheckoutUC: checkoutUC,
		SessionUC:  sessionUC,
		AuditUC:    auditUC,
		RiskUC:     riskUC,
		TimeLogUC:  timeLogUC,
		UserRepo:   userRepo,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
