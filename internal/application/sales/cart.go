package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// CartLine es una línea de carrito en construcción. UnitPrice se congela al
// agregar el producto: un cambio de precio a mitad de venta no altera la línea.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Cart es el carrito mutable del terminal de venta. No toca stock: la
// disponibilidad se valida al agregar y se revalida al finalizar.
type Cart struct {
	lines []CartLine
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine agrega qty unidades del producto. Falla con ErrInsufficientStock si el
// acumulado solicitado supera el stock actual, dejando el carrito sin cambios.
func (c *Cart) AddLine(product *entity.Product, qty int) error {
	if product == nil {
		return domain.ErrNotFound
	}
	if qty < 1 {
		return domain.ErrInvalidInput
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			if c.lines[i].Quantity+qty > product.StockQuantity {
				return domain.ErrInsufficientStock
			}
			// El precio congelado de la línea original se conserva.
			c.lines[i].Quantity += qty
			return nil
		}
	}
	if qty > product.StockQuantity {
		return domain.ErrInsufficientStock
	}
	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.SalePrice,
		Quantity:  qty,
	})
	return nil
}

// SetLineQuantity fija la cantidad de una línea. qty 0 elimina la línea; una
// cantidad por encima de available falla y deja el carrito sin cambios.
func (c *Cart) SetLineQuantity(productID string, qty, available int) error {
	if qty < 0 {
		return domain.ErrInvalidInput
	}
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if qty == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if qty > available {
			return domain.ErrInsufficientStock
		}
		c.lines[i].Quantity = qty
		return nil
	}
	return domain.ErrNotFound
}

// RemoveLine elimina la línea del producto si existe.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total suma qty * precio congelado de cada línea.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Empty indica si el carrito no tiene líneas.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines devuelve una copia de las líneas actuales.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
