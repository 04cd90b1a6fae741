package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.AuditEventRepository = (*AuditEventRepo)(nil)

// AuditEventRepo implementación de la trilla de auditoría sobre PostgreSQL.
// Solo INSERT y SELECT: no hay UPDATE ni DELETE en la tabla.
type AuditEventRepo struct {
	q Querier
}

// NewAuditEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditEventRepository(q Querier) *AuditEventRepo {
	return &AuditEventRepo{q: q}
}

// Create persiste un evento de auditoría.
func (r *AuditEventRepo) Create(event *entity.AuditEvent) error {
	query := `
		INSERT INTO audit_events (id, operator_id, action, description, severity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.OperatorID, event.Action, event.Description, event.Severity, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByOperator lista los eventos de un operador en orden de creación (para replay del score).
func (r *AuditEventRepo) ListByOperator(operatorID string, limit, offset int) ([]*entity.AuditEvent, error) {
	query := `
		SELECT id, operator_id, action, description, severity, created_at
		FROM audit_events WHERE operator_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	return r.list(query, operatorID, limit, offset)
}

// List lista la trilla completa en orden de creación.
func (r *AuditEventRepo) List(limit, offset int) ([]*entity.AuditEvent, error) {
	query := `
		SELECT id, operator_id, action, description, severity, created_at
		FROM audit_events ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *AuditEventRepo) list(query string, args ...any) ([]*entity.AuditEvent, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEvent
	for rows.Next() {
		var e entity.AuditEvent
		if err := rows.Scan(&e.ID, &e.OperatorID, &e.Action, &e.Description, &e.Severity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
