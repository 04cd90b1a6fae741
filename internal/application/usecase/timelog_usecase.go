package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TimeLogUseCase marcaciones de jornada (control de horario de RRHH).
type TimeLogUseCase struct {
	repo repository.TimeLogRepository
}

// NewTimeLogUseCase construye el caso de uso.
func NewTimeLogUseCase(repo repository.TimeLogRepository) *TimeLogUseCase {
	return &TimeLogUseCase{repo: repo}
}

// ClockIn abre una marcación. Falla con ErrConflict si ya hay una abierta.
func (uc *TimeLogUseCase) ClockIn(userID string) (*dto.TimeLogResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	open, err := uc.repo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrConflict
	}
	log := &entity.TimeLog{
		ID:      uuid.New().String(),
		UserID:  userID,
		ClockIn: time.Now(),
	}
	if err := uc.repo.Create(log); err != nil {
		return nil, err
	}
	return toTimeLogResponse(log), nil
}

// ClockOut cierra la marcación abierta. Falla con ErrConflict si no hay ninguna.
func (uc *TimeLogUseCase) ClockOut(userID string) (*dto.TimeLogResponse, error) {
	open, err := uc.repo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	open.ClockOut = &now
	if err := uc.repo.Update(open); err != nil {
		return nil, err
	}
	return toTimeLogResponse(open), nil
}

// ListByUser lista marcaciones de un usuario con paginación.
func (uc *TimeLogUseCase) ListByUser(userID string, limit, offset int) (*dto.TimeLogListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.TimeLogListResponse{
		Items: make([]dto.TimeLogResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, l := range list {
		out.Items = append(out.Items, *toTimeLogResponse(l))
	}
	return out, nil
}

func toTimeLogResponse(l *entity.TimeLog) *dto.TimeLogResponse {
	if l == nil {
		return nil
	}
	return &dto.TimeLogResponse{
		ID:       l.ID,
		UserID:   l.UserID,
		ClockIn:  l.ClockIn,
		ClockOut: l.ClockOut,
	}
}
