package risk_test

import (
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/audit"
	apprisk "github.com/jhoicas/Caja-api/internal/application/risk"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	domrisk "github.com/jhoicas/Caja-api/internal/domain/risk"
	"github.com/jhoicas/Caja-api/internal/infrastructure/memory"
	"github.com/jhoicas/Caja-api/pkg/logger"
)

const testOperatorID = "op-001"

type riskEnv struct {
	store *memory.Store
	bus   EventBus.Bus
	trail *audit.TrailUseCase
	uc    *apprisk.ScoringUseCase
}

func newRiskEnv(t *testing.T) *riskEnv {
	t.Helper()
	store := memory.NewStore()
	bus := EventBus.New()
	auditRepo := memory.NewAuditEventRepository(store)

	uc := apprisk.NewScoringUseCase(
		memory.NewRiskProfileRepository(store),
		auditRepo,
		domrisk.DefaultWeights, domrisk.DefaultBands, 1,
		logger.Nop(),
	)
	require.NoError(t, uc.SubscribeTo(bus))
	return &riskEnv{
		store: store,
		bus:   bus,
		trail: audit.NewTrailUseCase(auditRepo, bus),
		uc:    uc,
	}
}

func eventoDePrueba(severity string) entity.AuditEvent {
	return entity.AuditEvent{
		ID:         "ev-" + severity,
		OperatorID: testOperatorID,
		Action:     entity.ActionPriceOverride,
		Severity:   severity,
		CreatedAt:  time.Now(),
	}
}

// Caso 1: Cada evento suma su peso por severidad; el score queda acotado a 100.
func TestRecordEvent_SumaPonderadaYAcota(t *testing.T) {
	env := newRiskEnv(t)

	require.NoError(t, env.uc.RecordEvent(eventoDePrueba(entity.SeverityMedium)))
	require.NoError(t, env.uc.RecordEvent(eventoDePrueba(entity.SeverityLow)))

	profile, err := env.uc.GetProfile(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, 12, profile.Score, "MEDIUM(10) + LOW(2)")
	assert.Equal(t, 2, profile.EventCount)
	assert.Equal(t, domrisk.ClassLow, profile.Classification)
	require.NotNil(t, profile.LastEventAt)

	// Cinco HIGH más saturarían el score: se acota a 100.
	for i := 0; i < 5; i++ {
		require.NoError(t, env.uc.RecordEvent(eventoDePrueba(entity.SeverityHigh)))
	}
	profile, err = env.uc.GetProfile(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, 100, profile.Score)
	assert.Equal(t, domrisk.ClassCritical, profile.Classification)
}

// Caso 2: Un operador sin eventos proyecta score 0 / LOW, sin perfil persistido.
func TestGetProfile_OperadorSinEventos(t *testing.T) {
	env := newRiskEnv(t)

	profile, err := env.uc.GetProfile("desconocido")
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Score)
	assert.Equal(t, 0, profile.EventCount)
	assert.Equal(t, domrisk.ClassLow, profile.Classification)
	assert.Nil(t, profile.LastEventAt)
}

// Caso 3: Los eventos llegan por el bus en orden de creación; reconstruir el
// score desde la trilla (Replay) reproduce exactamente el score acumulado.
func TestEventosViaBus_ReplayCoincideConAcumulado(t *testing.T) {
	env := newRiskEnv(t)

	for _, e := range []struct{ action, severity string }{
		{entity.ActionPriceOverride, entity.SeverityMedium},
		{entity.ActionCancellation, entity.SeverityLow},
		{entity.ActionRefund, entity.SeverityHigh},
	} {
		_, err := env.trail.Append(testOperatorID, e.action, "evento de prueba", e.severity)
		require.NoError(t, err)
	}

	profile, err := env.uc.GetProfile(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, 37, profile.Score, "MEDIUM(10) + LOW(2) + HIGH(25)")
	assert.Equal(t, 3, profile.EventCount)

	replayed, err := env.uc.Replay(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, profile.Score, replayed,
		"la reconstrucción desde la trilla debe coincidir con el score acumulado")
}

func TestReplay_OperadorSinEventos(t *testing.T) {
	env := newRiskEnv(t)
	score, err := env.uc.Replay("desconocido")
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

// Caso 4: El enfriamiento diario descuenta la cuota solo a operadores sin
// eventos en las últimas 24 horas.
func TestDecayAll_EnfriaSoloPerfilesInactivos(t *testing.T) {
	env := newRiskEnv(t)
	now := time.Now()
	profileRepo := memory.NewRiskProfileRepository(env.store)

	hace48h := now.Add(-48 * time.Hour)
	hace1h := now.Add(-1 * time.Hour)
	require.NoError(t, profileRepo.Upsert(&entity.RiskProfile{
		OperatorID: "op-frio", Score: 40, EventCount: 3, LastEventAt: &hace48h, UpdatedAt: hace48h,
	}))
	require.NoError(t, profileRepo.Upsert(&entity.RiskProfile{
		OperatorID: "op-activo", Score: 40, EventCount: 3, LastEventAt: &hace1h, UpdatedAt: hace1h,
	}))

	require.NoError(t, env.uc.DecayAll(now))

	frio, err := profileRepo.Get("op-frio")
	require.NoError(t, err)
	assert.Equal(t, 39, frio.Score, "la corrida diaria descuenta la cuota de un día")

	activo, err := profileRepo.Get("op-activo")
	require.NoError(t, err)
	assert.Equal(t, 40, activo.Score, "un operador con eventos recientes no se enfría")
}

// Caso 5: El score nunca baja de cero por enfriamiento.
func TestDecayAll_NoBajaDeCero(t *testing.T) {
	store := memory.NewStore()
	profileRepo := memory.NewRiskProfileRepository(store)
	uc := apprisk.NewScoringUseCase(
		profileRepo,
		memory.NewAuditEventRepository(store),
		domrisk.DefaultWeights, domrisk.DefaultBands, 50,
		logger.Nop(),
	)

	now := time.Now()
	hace48h := now.Add(-48 * time.Hour)
	require.NoError(t, profileRepo.Upsert(&entity.RiskProfile{
		OperatorID: testOperatorID, Score: 30, EventCount: 1, LastEventAt: &hace48h, UpdatedAt: hace48h,
	}))

	require.NoError(t, uc.DecayAll(now))

	profile, err := profileRepo.Get(testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Score)
}
