package register

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/register"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// SessionUseCase maneja el ciclo de vida de una caja: CLOSED -> OPEN -> CLOSED.
// Abrir exige que la caja no tenga otra sesión OPEN (check-then-act atómico por
// caja); cerrar concilia lo reportado contra lo esperado y es definitivo.
type SessionUseCase struct {
	txRunner    SessionTxRunner
	sessionRepo repository.SessionRepository
	bus         EventBus.Bus
	policy      register.Policy
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner SessionTxRunner, sessionRepo repository.SessionRepository, bus EventBus.Bus, policy register.Policy) *SessionUseCase {
	return &SessionUseCase{txRunner: txRunner, sessionRepo: sessionRepo, bus: bus, policy: policy}
}

// Open abre una sesión nueva para la caja. El esperado en efectivo arranca en el
// fondo de apertura. Falla con ErrRegisterAlreadyOpen si ya hay una sesión OPEN:
// el repositorio garantiza que dos Open concurrentes no puedan ganar ambos
// (índice único parcial sobre sesiones abiertas).
func (uc *SessionUseCase) Open(operatorID string, in dto.OpenRegisterRequest) (*dto.SessionResponse, error) {
	if in.RegisterName == "" || operatorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.sessionRepo.GetOpenByRegister(in.RegisterName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRegisterAlreadyOpen
	}
	session := &entity.RegisterSession{
		ID:           uuid.New().String(),
		RegisterName: in.RegisterName,
		OperatorID:   operatorID,
		OpenedAt:     time.Now(),
		InitialCash:  in.InitialCash,
		ExpectedCash: in.InitialCash,
		ExpectedCard: decimal.Zero,
		Status:       entity.SessionOpen,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// Close cierra la sesión: calcula divergencia = reportado - esperado (efectivo y
// tarjetas por separado), marca CLOSED con timestamp y deja la sesión inmutable.
// Una segunda llamada sobre la misma sesión falla con ErrSessionNotOpen sin
// alterar la divergencia ya calculada. Divergencias estrictamente por encima del
// umbral generan un AuditEvent REGISTER_DISCREPANCY atribuido al operador.
func (uc *SessionUseCase) Close(ctx context.Context, sessionID string, in dto.CloseRegisterRequest) (*dto.ClosingResponse, error) {
	var closed *entity.RegisterSession
	var emitted []entity.AuditEvent

	err := uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.SessionRepository,
		auditRepo repository.AuditEventRepository,
	) error {
		session, err := sessionRepo.GetForUpdate(sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsOpen() {
			return domain.ErrSessionNotOpen
		}

		now := time.Now()
		cashDiff := register.Discrepancy(in.ReportedCash, session.ExpectedCash)
		cardDiff := register.Discrepancy(in.ReportedCard, session.ExpectedCard)

		reportedCash, reportedCard := in.ReportedCash, in.ReportedCard
		session.ReportedCash = &reportedCash
		session.ReportedCard = &reportedCard
		session.CashDiff = &cashDiff
		session.CardDiff = &cardDiff
		session.ClosedAt = &now
		session.Status = entity.SessionClosed
		if err := sessionRepo.Update(session); err != nil {
			return err
		}

		// La conciliación de tarjetas se evalúa igual que la de efectivo,
		// de forma independiente.
		for _, d := range []struct {
			label string
			diff  decimal.Decimal
		}{
			{"efectivo", cashDiff},
			{"tarjetas", cardDiff},
		} {
			severity, triggered := uc.policy.SeverityFor(d.diff)
			if !triggered {
				continue
			}
			event := entity.AuditEvent{
				ID:         uuid.New().String(),
				OperatorID: session.OperatorID,
				Action:     entity.ActionRegisterDiscrepancy,
				Description: fmt.Sprintf("cierre de %s (%s): divergencia de %s en %s",
					session.RegisterName, session.ID, d.diff.StringFixed(2), d.label),
				Severity:  severity,
				CreatedAt: now,
			}
			if err := auditRepo.Create(&event); err != nil {
				return err
			}
			emitted = append(emitted, event)
		}

		closed = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Publicación post-commit: el motor de riesgo recibe los eventos en orden.
	if uc.bus != nil {
		for _, ev := range emitted {
			uc.bus.Publish(events.TopicAuditEvent, events.AuditEventCreated{Event: ev})
		}
	}

	out := &dto.ClosingResponse{
		Session:    *toSessionResponse(closed),
		Reconciled: len(emitted) == 0,
	}
	for _, ev := range emitted {
		// Con divergencia en ambos buckets prevalece la severidad más alta.
		if out.AlertSeverity == "" || ev.Severity == entity.SeverityHigh {
			out.AlertSeverity = ev.Severity
		}
	}
	return out, nil
}

// GetByID devuelve una sesión por ID.
func (uc *SessionUseCase) GetByID(id string) (*dto.SessionResponse, error) {
	session, err := uc.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return toSessionResponse(session), nil
}

// Session devuelve la entidad cruda (para el comprobante PDF de cierre).
func (uc *SessionUseCase) Session(id string) (*entity.RegisterSession, error) {
	return uc.sessionRepo.GetByID(id)
}

// ListOpen lista las sesiones abiertas (monitoreo de cajas).
func (uc *SessionUseCase) ListOpen() (*dto.SessionListResponse, error) {
	list, err := uc.sessionRepo.ListOpen()
	if err != nil {
		return nil, err
	}
	return toSessionList(list), nil
}

// ListRecentClosed lista los últimos cierres realizados.
func (uc *SessionUseCase) ListRecentClosed(limit int) (*dto.SessionListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.sessionRepo.ListRecentClosed(limit)
	if err != nil {
		return nil, err
	}
	return toSessionList(list), nil
}

func toSessionList(list []*entity.RegisterSession) *dto.SessionListResponse {
	out := &dto.SessionListResponse{Items: make([]dto.SessionResponse, 0, len(list))}
	for _, s := range list {
		out.Items = append(out.Items, *toSessionResponse(s))
	}
	return out
}

func toSessionResponse(s *entity.RegisterSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		ID:           s.ID,
		RegisterName: s.RegisterName,
		OperatorID:   s.OperatorID,
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
		InitialCash:  s.InitialCash,
		ExpectedCash: s.ExpectedCash,
		ExpectedCard: s.ExpectedCard,
		ReportedCash: s.ReportedCash,
		ReportedCard: s.ReportedCard,
		CashDiff:     s.CashDiff,
		CardDiff:     s.CardDiff,
		Status:       s.Status,
	}
}
