package register_test

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	appregister "github.com/jhoicas/Caja-api/internal/application/register"
	apprisk "github.com/jhoicas/Caja-api/internal/application/risk"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	domregister "github.com/jhoicas/Caja-api/internal/domain/register"
	domrisk "github.com/jhoicas/Caja-api/internal/domain/risk"
	"github.com/jhoicas/Caja-api/internal/infrastructure/memory"
	"github.com/jhoicas/Caja-api/pkg/logger"
)

const testOperatorID = "op-001"

// sessionEnv arma el ciclo de caja completo: caso de uso de sesión más el motor
// de riesgo suscrito al bus, como en producción.
type sessionEnv struct {
	store *memory.Store
	uc    *appregister.SessionUseCase
	risk  *apprisk.ScoringUseCase
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()
	store := memory.NewStore()
	bus := EventBus.New()

	uc := appregister.NewSessionUseCase(
		memory.NewTxRunner(store),
		memory.NewSessionRepository(store),
		bus,
		domregister.DefaultPolicy(), // umbral Kz 500
	)
	riskUC := apprisk.NewScoringUseCase(
		memory.NewRiskProfileRepository(store),
		memory.NewAuditEventRepository(store),
		domrisk.DefaultWeights, domrisk.DefaultBands, 1,
		logger.Nop(),
	)
	require.NoError(t, riskUC.SubscribeTo(bus))
	return &sessionEnv{store: store, uc: uc, risk: riskUC}
}

func (e *sessionEnv) open(t *testing.T, registerName string, initialCash int64) *dto.SessionResponse {
	t.Helper()
	out, err := e.uc.Open(testOperatorID, dto.OpenRegisterRequest{
		RegisterName: registerName,
		InitialCash:  decimal.NewFromInt(initialCash),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func (e *sessionEnv) auditTrail(t *testing.T) []*entity.AuditEvent {
	t.Helper()
	trail, err := memory.NewAuditEventRepository(e.store).List(100, 0)
	require.NoError(t, err)
	return trail
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Caso 1: Abrir arranca en OPEN con el esperado igual al fondo de apertura.
func TestOpen_SesionNueva(t *testing.T) {
	env := newSessionEnv(t)
	out := env.open(t, "CAJA-01", 5000)

	assert.Equal(t, entity.SessionOpen, out.Status)
	assert.Equal(t, "CAJA-01", out.RegisterName)
	assert.Equal(t, testOperatorID, out.OperatorID)
	assert.True(t, out.ExpectedCash.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.ExpectedCard.IsZero())
	assert.Nil(t, out.ClosedAt)
}

// Caso 2: Una caja no admite dos sesiones OPEN; otra caja sí puede abrir.
func TestOpen_SegundaSesionMismaCaja_Falla(t *testing.T) {
	env := newSessionEnv(t)
	env.open(t, "CAJA-01", 5000)

	_, err := env.uc.Open("op-002", dto.OpenRegisterRequest{
		RegisterName: "CAJA-01",
		InitialCash:  decimal.NewFromInt(3000),
	})
	assert.ErrorIs(t, err, domain.ErrRegisterAlreadyOpen)

	// Otra caja abre sin problema.
	env.open(t, "CAJA-02", 3000)
}

func TestOpen_EntradasInvalidas(t *testing.T) {
	env := newSessionEnv(t)

	_, err := env.uc.Open(testOperatorID, dto.OpenRegisterRequest{RegisterName: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.uc.Open(testOperatorID, dto.OpenRegisterRequest{
		RegisterName: "CAJA-01",
		InitialCash:  decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 3: Cierre conciliado — lo contado coincide con lo esperado: divergencia
// cero, sin evento de auditoría.
func TestClose_Conciliada_SinEvento(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(5000),
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	assert.True(t, out.Reconciled)
	assert.Empty(t, out.AlertSeverity)
	assert.Equal(t, entity.SessionClosed, out.Session.Status)
	require.NotNil(t, out.Session.ClosedAt)
	require.NotNil(t, out.Session.CashDiff)
	assert.True(t, out.Session.CashDiff.IsZero())
	assert.Empty(t, env.auditTrail(t))
}

// Caso 4: Divergencia exactamente en el umbral (Kz 500) no dispara: la regla es
// estrictamente "por encima de".
func TestClose_DivergenciaEnElUmbral_NoDispara(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(4500), // diff -500
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	assert.True(t, out.Reconciled)
	assert.True(t, out.Session.CashDiff.Equal(dec("-500")))
	assert.Empty(t, env.auditTrail(t))
}

// Caso 5: Faltante moderado (umbral < |d| <= 2*umbral) genera evento MEDIUM y
// alimenta el score del operador.
func TestClose_DivergenciaMedia_GeneraEventoMedium(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(4400), // diff -600
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	assert.False(t, out.Reconciled)
	assert.Equal(t, entity.SeverityMedium, out.AlertSeverity)

	trail := env.auditTrail(t)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.ActionRegisterDiscrepancy, trail[0].Action)
	assert.Equal(t, testOperatorID, trail[0].OperatorID)

	profile, err := env.risk.GetProfile(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, domrisk.DefaultWeights.Medium, profile.Score,
		"el evento MEDIUM debe sumar su peso al score del operador")
}

// Caso 6: Faltante grande (|d| > 2*umbral) escala a HIGH.
func TestClose_DivergenciaAlta_GeneraEventoHigh(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(3580), // diff -1420
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	assert.False(t, out.Reconciled)
	assert.Equal(t, entity.SeverityHigh, out.AlertSeverity)
	assert.True(t, out.Session.CashDiff.Equal(dec("-1420")))

	profile, err := env.risk.GetProfile(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, domrisk.DefaultWeights.High, profile.Score)
}

// Caso 7: Efectivo y tarjetas se concilian por separado: divergencia en ambos
// buckets deja dos eventos y reporta la severidad más alta.
func TestClose_DivergenciaEnAmbosBuckets(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(4400), // diff -600 -> MEDIUM
		ReportedCard: decimal.NewFromInt(1500), // diff +1500 -> HIGH (sobrante también cuenta)
	})
	require.NoError(t, err)

	assert.False(t, out.Reconciled)
	assert.Equal(t, entity.SeverityHigh, out.AlertSeverity)
	assert.Len(t, env.auditTrail(t), 2)
}

// Caso 8: El cierre es definitivo — una segunda llamada falla y no recalcula la
// divergencia ya registrada.
func TestClose_SesionYaCerrada_EsInmutable(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	first, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(5000),
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	_, err = env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(9999),
		ReportedCard: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)

	session, err := memory.NewSessionRepository(env.store).GetByID(opened.ID)
	require.NoError(t, err)
	require.NotNil(t, session.CashDiff)
	assert.True(t, session.CashDiff.Equal(*first.Session.CashDiff),
		"la divergencia del primer cierre no debe cambiar")
}

// Caso 9: Ciclo completo — abrir con fondo de 5000, vender 2400 en efectivo y
// cerrar contando 7400: conciliado, sin evento de auditoría.
func TestCicloCompleto_AbrirVenderCerrarConciliado(t *testing.T) {
	env := newSessionEnv(t)
	opened := env.open(t, "CAJA-01", 5000)

	require.NoError(t, memory.NewProductRepository(env.store).Create(&entity.Product{
		ID:            "p1",
		Barcode:       "789p1",
		Name:          "Producto p1",
		SalePrice:     decimal.NewFromInt(1200),
		StockQuantity: 10,
	}))

	checkout := sales.NewCheckoutUseCase(
		memory.NewTxRunner(env.store),
		memory.NewProductRepository(env.store),
		nil,
	)
	cart, err := checkout.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)
	_, err = checkout.Finalize(context.Background(), cart, opened.ID, testOperatorID, entity.PaymentCash)
	require.NoError(t, err)

	out, err := env.uc.Close(context.Background(), opened.ID, dto.CloseRegisterRequest{
		ReportedCash: decimal.NewFromInt(7400), // 5000 fondo + 2400 vendidos
		ReportedCard: decimal.Zero,
	})
	require.NoError(t, err)

	assert.True(t, out.Reconciled)
	assert.True(t, out.Session.ExpectedCash.Equal(decimal.NewFromInt(7400)))
	assert.True(t, out.Session.CashDiff.IsZero())
	assert.Empty(t, env.auditTrail(t))
}

func TestClose_SesionInexistente(t *testing.T) {
	env := newSessionEnv(t)
	_, err := env.uc.Close(context.Background(), "nope", dto.CloseRegisterRequest{
		ReportedCash: decimal.Zero,
		ReportedCard: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
