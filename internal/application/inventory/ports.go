package inventory

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las mutaciones de stock.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditEventRepository,
	) error) error
}
