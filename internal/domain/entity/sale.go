package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en el PDV.
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD" // tarjetas y pagos digitales
)

// Sale es una venta finalizada. Inmutable después de Finalize: la única operación
// que muta stock de productos.
type Sale struct {
	ID            string
	SessionID     string
	OperatorID    string
	PaymentMethod string
	Total         decimal.Decimal
	FinalizedAt   time.Time
	Lines         []SaleLine
}

// SaleLine es una línea de venta. UnitPrice queda congelado al momento de agregar
// el producto al carrito: un cambio de precio a mitad de venta no altera la línea.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}
