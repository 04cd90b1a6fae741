package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Barcode    string          `json:"barcode" validate:"required,min=1,max=64"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Category   string          `json:"category"`
	SupplierID string          `json:"supplier_id"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	MinStock   int             `json:"min_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock: se maneja
// vía movimientos).
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category   *string          `json:"category"`
	SupplierID *string          `json:"supplier_id"`
	CostPrice  *decimal.Decimal `json:"cost_price"`
	SalePrice  *decimal.Decimal `json:"sale_price"`
	MinStock   *int             `json:"min_stock"`
}

// RestockRequest entrada para reabastecer stock.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,min=0"`
}

// AdjustStockRequest entrada para un ajuste manual de stock (auditado).
type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SupplierID    string          `json:"supplier_id"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	LastRestock   *time.Time      `json:"last_restock,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
