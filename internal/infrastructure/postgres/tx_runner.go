package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Caja-api/internal/application/inventory"
	"github.com/jhoicas/Caja-api/internal/application/register"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// Ensure TxRunner implements los tres contratos transaccionales.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ register.SessionTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para el checkout de venta, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewSessionRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger inicia una transacción para mutaciones de stock (reabastecimiento, ajuste).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	auditRepo repository.AuditEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewAuditEventRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSession inicia una transacción para el cierre de caja.
func (r *TxRunner) RunSession(ctx context.Context, fn func(
	sessionRepo repository.SessionRepository,
	auditRepo repository.AuditEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSessionRepository(tx),
		NewAuditEventRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
