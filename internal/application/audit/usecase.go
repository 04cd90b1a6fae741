package audit

import (
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TrailUseCase administra la trilla de auditoría: append-only, cada evento
// persistido se publica al bus para que el motor de riesgo lo pondere.
type TrailUseCase struct {
	repo repository.AuditEventRepository
	bus  EventBus.Bus
}

// NewTrailUseCase construye el caso de uso.
func NewTrailUseCase(repo repository.AuditEventRepository, bus EventBus.Bus) *TrailUseCase {
	return &TrailUseCase{repo: repo, bus: bus}
}

// Append persiste un evento y lo publica. Los eventos jamás se editan ni borran.
func (uc *TrailUseCase) Append(operatorID, action, description, severity string) (*entity.AuditEvent, error) {
	if operatorID == "" || action == "" {
		return nil, domain.ErrInvalidInput
	}
	event := &entity.AuditEvent{
		ID:          uuid.New().String(),
		OperatorID:  operatorID,
		Action:      action,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(event); err != nil {
		return nil, err
	}
	if uc.bus != nil {
		uc.bus.Publish(events.TopicAuditEvent, events.AuditEventCreated{Event: *event})
	}
	return event, nil
}

// FlagAction registra una acción sensible del PDV (override de precio,
// cancelación, devolución) reportada por la capa de presentación.
func (uc *TrailUseCase) FlagAction(in dto.FlagActionRequest) (*dto.AuditEventResponse, error) {
	switch in.Action {
	case entity.ActionPriceOverride, entity.ActionCancellation, entity.ActionRefund:
	default:
		return nil, domain.ErrInvalidInput
	}
	switch in.Severity {
	case entity.SeverityLow, entity.SeverityMedium, entity.SeverityHigh:
	default:
		return nil, domain.ErrInvalidInput
	}
	event, err := uc.Append(in.OperatorID, in.Action, in.Description, in.Severity)
	if err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// List lista la trilla completa con paginación.
func (uc *TrailUseCase) List(limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// ListByOperator lista la trilla de un operador en orden de creación.
func (uc *TrailUseCase) ListByOperator(operatorID string, limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.repo.ListByOperator(operatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(list, limit, offset), nil
}

// Events devuelve entidades crudas (para exportadores CSV/XML).
func (uc *TrailUseCase) Events(limit, offset int) ([]*entity.AuditEvent, error) {
	return uc.repo.List(limit, offset)
}

func toListResponse(list []*entity.AuditEvent, limit, offset int) *dto.AuditListResponse {
	out := &dto.AuditListResponse{
		Items: make([]dto.AuditEventResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, e := range list {
		out.Items = append(out.Items, *toEventResponse(e))
	}
	return out
}

func toEventResponse(e *entity.AuditEvent) *dto.AuditEventResponse {
	if e == nil {
		return nil
	}
	return &dto.AuditEventResponse{
		ID:          e.ID,
		OperatorID:  e.OperatorID,
		Action:      e.Action,
		Description: e.Description,
		Severity:    e.Severity,
		CreatedAt:   e.CreatedAt,
	}
}
