package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// SessionRepository define el puerto de persistencia para sesiones de caja.
// Create debe fallar con domain.ErrRegisterAlreadyOpen si ya existe una sesión
// OPEN para la misma caja (índice único parcial en PostgreSQL; mutex en memoria):
// el check-then-act de apertura es atómico por caja.
type SessionRepository interface {
	Create(session *entity.RegisterSession) error
	GetByID(id string) (*entity.RegisterSession, error)
	GetForUpdate(id string) (*entity.RegisterSession, error)
	GetOpenByRegister(registerName string) (*entity.RegisterSession, error)
	Update(session *entity.RegisterSession) error
	ListOpen() ([]*entity.RegisterSession, error)
	ListRecentClosed(limit int) ([]*entity.RegisterSession, error)
}
