package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// AuditEventRepository define el puerto para la trilla de auditoría (append-only).
type AuditEventRepository interface {
	Create(event *entity.AuditEvent) error
	ListByOperator(operatorID string, limit, offset int) ([]*entity.AuditEvent, error)
	List(limit, offset int) ([]*entity.AuditEvent, error)
}
