package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// StockMovementRepository define el puerto para el historial de movimientos de stock.
// Solo inserta y consulta: la tabla es append-only.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
