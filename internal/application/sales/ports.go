package sales

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta el checkout dentro de una transacción de BD: o todas las
// líneas descuentan stock y la venta queda registrada, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.SessionRepository,
	) error) error
}
