package risk

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
	"github.com/jhoicas/Caja-api/internal/domain/risk"
	"github.com/jhoicas/Caja-api/pkg/logger"
)

// ScoringUseCase es el motor de riesgo: consume eventos de auditoría del bus y
// mantiene el score por operador. El publish del bus es síncrono y las
// actualizaciones se serializan con un mutex, así los eventos de un mismo
// operador se aplican en orden de creación y el score es reproducible.
type ScoringUseCase struct {
	mu          sync.Mutex
	profileRepo repository.RiskProfileRepository
	auditRepo   repository.AuditEventRepository
	weights     risk.Weights
	bands       risk.Bands
	decayPerDay int
	log         *logger.Logger
}

// NewScoringUseCase construye el motor con los parámetros de política.
func NewScoringUseCase(
	profileRepo repository.RiskProfileRepository,
	auditRepo repository.AuditEventRepository,
	weights risk.Weights, bands risk.Bands, decayPerDay int,
	log *logger.Logger,
) *ScoringUseCase {
	return &ScoringUseCase{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		weights:     weights,
		bands:       bands,
		decayPerDay: decayPerDay,
		log:         log,
	}
}

// SubscribeTo engancha el motor al bus de eventos de auditoría.
func (uc *ScoringUseCase) SubscribeTo(bus EventBus.Bus) error {
	return bus.Subscribe(events.TopicAuditEvent, uc.onAuditEvent)
}

// onAuditEvent corre en el goroutine del publicador; un error de persistencia no
// puede propagarse al emisor, solo se registra.
func (uc *ScoringUseCase) onAuditEvent(created events.AuditEventCreated) {
	if err := uc.RecordEvent(created.Event); err != nil && uc.log != nil {
		uc.log.Error().Err(err).
			Str("operator_id", created.Event.OperatorID).
			Str("action", created.Event.Action).
			Msg("actualizar score de riesgo")
	}
}

// RecordEvent aplica el incremento ponderado por severidad al score del
// operador, acotado a [0,100].
func (uc *ScoringUseCase) RecordEvent(event entity.AuditEvent) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	profile, err := uc.profileRepo.Get(event.OperatorID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &entity.RiskProfile{OperatorID: event.OperatorID}
	}
	profile.Score = risk.Apply(profile.Score, event.Severity, uc.weights)
	profile.EventCount++
	at := event.CreatedAt
	profile.LastEventAt = &at
	profile.UpdatedAt = time.Now()
	return uc.profileRepo.Upsert(profile)
}

// Replay reconstruye el score del operador desde cero con su trilla completa de
// eventos: debe coincidir con el score acumulado (reconstrucción auditada).
func (uc *ScoringUseCase) Replay(operatorID string) (int, error) {
	list, err := uc.auditRepo.ListByOperator(operatorID, 10000, 0)
	if err != nil {
		return 0, err
	}
	evs := make([]entity.AuditEvent, 0, len(list))
	for _, e := range list {
		evs = append(evs, *e)
	}
	return risk.Replay(evs, uc.weights), nil
}

// GetProfile es una proyección de solo lectura; un operador sin eventos tiene
// score 0 / LOW.
func (uc *ScoringUseCase) GetProfile(operatorID string) (*dto.RiskProfileResponse, error) {
	profile, err := uc.profileRepo.Get(operatorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.RiskProfile{OperatorID: operatorID}
	}
	return uc.toResponse(profile), nil
}

// ListProfiles lista los perfiles existentes.
func (uc *ScoringUseCase) ListProfiles(limit, offset int) (*dto.RiskProfileListResponse, error) {
	list, err := uc.profileRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.RiskProfileListResponse{Items: make([]dto.RiskProfileResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, *uc.toResponse(p))
	}
	return out, nil
}

// DecayAll enfría los scores: a cada operador sin eventos en las últimas 24h se
// le descuenta la cuota diaria. Pensado para correr una vez al día desde cron.
func (uc *ScoringUseCase) DecayAll(now time.Time) error {
	if uc.decayPerDay <= 0 {
		return nil
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	list, err := uc.profileRepo.List(10000, 0)
	if err != nil {
		return err
	}
	for _, p := range list {
		if p.Score == 0 || p.LastEventAt == nil {
			continue
		}
		if now.Sub(*p.LastEventAt) < 24*time.Hour {
			continue
		}
		cooled := risk.Decay(p.Score, 24*time.Hour, uc.decayPerDay)
		if cooled == p.Score {
			continue
		}
		p.Score = cooled
		p.UpdatedAt = now
		if err := uc.profileRepo.Upsert(p); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ScoringUseCase) toResponse(p *entity.RiskProfile) *dto.RiskProfileResponse {
	return &dto.RiskProfileResponse{
		OperatorID:     p.OperatorID,
		Score:          p.Score,
		Classification: risk.Classify(p.Score, uc.bands),
		EventCount:     p.EventCount,
		LastEventAt:    p.LastEventAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
