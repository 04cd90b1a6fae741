package register

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// SessionTxRunner ejecuta el cierre de caja dentro de una transacción: el paso a
// CLOSED y el eventual evento de divergencia se confirman juntos o no se
// confirma nada.
type SessionTxRunner interface {
	RunSession(ctx context.Context, fn func(
		sessionRepo repository.SessionRepository,
		auditRepo repository.AuditEventRepository,
	) error) error
}
