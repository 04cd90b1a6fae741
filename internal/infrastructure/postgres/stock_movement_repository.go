package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, product_id, type, quantity, unit_price, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ProductID, movement.Type,
		movement.Quantity, movement.UnitPrice, movement.Date, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de movimientos de un producto, más reciente primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, type, quantity, unit_price, date, created_at, COALESCE(created_by, '')
		FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.Type,
			&m.Quantity, &m.UnitPrice, &m.Date, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
