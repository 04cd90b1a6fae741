package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	SessionOpen   = "OPEN"
	SessionClosed = "CLOSED"
)

// RegisterSession es el ciclo de vida de una caja atendida: desde el fondo de
// apertura hasta la conciliación de cierre. ExpectedCash solo crece por ventas
// finalizadas atribuidas a la sesión. Una vez CLOSED la sesión es inmutable;
// reabrir la caja crea una sesión nueva con otro ID.
type RegisterSession struct {
	ID           string
	RegisterName string
	OperatorID   string
	OpenedAt     time.Time
	ClosedAt     *time.Time
	InitialCash  decimal.Decimal
	ExpectedCash decimal.Decimal // fondo inicial + ventas en efectivo
	ExpectedCard decimal.Decimal // ventas con tarjeta/digital
	ReportedCash *decimal.Decimal
	ReportedCard *decimal.Decimal
	CashDiff     *decimal.Decimal // reportado - esperado
	CardDiff     *decimal.Decimal
	Status       string
}

// IsOpen indica si la sesión sigue abierta.
func (s *RegisterSession) IsOpen() bool {
	return s.Status == SessionOpen
}
