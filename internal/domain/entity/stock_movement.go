package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSALE       = "SALE"       // baja por venta finalizada
	MovementTypeRESTOCK    = "RESTOCK"    // entrada por reabastecimiento
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual (auditado)
)

// StockMovement registra una mutación de stock. Append-only: nunca se edita ni borra.
type StockMovement struct {
	ID            string
	TransactionID string // ID de la venta o reabastecimiento que lo originó
	ProductID     string
	Type          string
	Quantity      int // positivo entrada, negativo salida
	UnitPrice     decimal.Decimal
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
