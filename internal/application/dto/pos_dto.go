package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del carrito enviada por el terminal de venta.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// FinalizeSaleRequest entrada para finalizar una venta.
type FinalizeSaleRequest struct {
	SessionID     string            `json:"session_id" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH CARD"`
	Lines         []SaleLineRequest `json:"lines" validate:"required"`
}

// SaleLineResponse una línea de venta finalizada.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta finalizada (inmutable).
type SaleResponse struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	OperatorID    string             `json:"operator_id"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	FinalizedAt   time.Time          `json:"finalized_at"`
	Lines         []SaleLineResponse `json:"lines"`
}
