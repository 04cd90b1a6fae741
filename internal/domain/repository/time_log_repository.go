package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// TimeLogRepository define el puerto para marcaciones de jornada.
type TimeLogRepository interface {
	Create(log *entity.TimeLog) error
	GetOpenByUser(userID string) (*entity.TimeLog, error)
	Update(log *entity.TimeLog) error
	ListByUser(userID string, limit, offset int) ([]*entity.TimeLog, error)
}
