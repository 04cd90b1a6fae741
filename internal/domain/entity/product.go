package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (clave de negocio: Barcode).
// StockQuantity solo se muta vía ventas, reabastecimientos o ajustes validados,
// nunca directo desde un handler; jamás queda negativo.
type Product struct {
	ID            string
	Barcode       string // código de barras, único
	Name          string
	Category      string
	SupplierID    string
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	StockQuantity int // siempre >= 0
	MinStock      int // umbral de alerta de stock bajo
	LastRestock   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinStock indica si el stock actual quedó por debajo del umbral mínimo.
func (p *Product) BelowMinStock() bool {
	return p.StockQuantity < p.MinStock
}
