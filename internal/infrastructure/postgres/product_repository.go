package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, barcode, name, category, supplier_id, cost_price, sale_price, stock_quantity, min_stock, last_restock, created_at, updated_at`

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, barcode, name, category, supplier_id, cost_price, sale_price, stock_quantity, min_stock, last_restock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Category, product.SupplierID,
		product.CostPrice, product.SalePrice, product.StockQuantity, product.MinStock,
		product.LastRestock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode obtiene un producto por código de barras (lectura del escáner del PDV).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product by barcode")
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción:
// dos ventas concurrentes del mismo producto se serializan aquí.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update actualiza datos del catálogo. No toca stock_quantity (se maneja vía movimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, supplier_id = $4, cost_price = $5, sale_price = $6, min_stock = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.SupplierID,
		product.CostPrice, product.SalePrice, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock absoluto (ya validado por la capa de aplicación).
func (r *ProductRepo) UpdateStock(productID string, stock int, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, updated_at = $3 WHERE id = $1`,
		productID, stock, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// MarkRestocked actualiza la fecha de último reabastecimiento.
func (r *ProductRepo) MarkRestocked(productID string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET last_restock = $2, updated_at = $2 WHERE id = $1`,
		productID, at,
	)
	if err != nil {
		return fmt.Errorf("mark restocked: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.Category, &p.SupplierID,
			&p.CostPrice, &p.SalePrice, &p.StockQuantity, &p.MinStock,
			&p.LastRestock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Barcode, &p.Name, &p.Category, &p.SupplierID,
		&p.CostPrice, &p.SalePrice, &p.StockQuantity, &p.MinStock,
		&p.LastRestock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
