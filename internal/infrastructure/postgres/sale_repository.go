package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Pensado para correr dentro de la tx de checkout.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, session_id, operator_id, payment_method, total, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.SessionID, sale.OperatorID, sale.PaymentMethod, sale.Total, sale.FinalizedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, product_id, name, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range sale.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, sale.ID, line.ProductID, line.Name, line.UnitPrice, line.Quantity, line.Subtotal,
		); err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, session_id, operator_id, payment_method, total, finalized_at FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.SessionID, &s.OperatorID, &s.PaymentMethod, &s.Total, &s.FinalizedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	lines, err := r.linesFor(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

// ListBySession lista las ventas de una sesión de caja en orden de finalización.
func (r *SaleRepo) ListBySession(sessionID string) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, session_id, operator_id, payment_method, total, finalized_at
		 FROM sales WHERE session_id = $1 ORDER BY finalized_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SessionID, &s.OperatorID, &s.PaymentMethod, &s.Total, &s.FinalizedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		lines, err := r.linesFor(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Lines = lines
	}
	return list, nil
}

func (r *SaleRepo) linesFor(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, name, unit_price, quantity, subtotal
		 FROM sale_lines WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Name, &l.UnitPrice, &l.Quantity, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
