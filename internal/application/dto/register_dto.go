package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenRegisterRequest entrada para abrir una caja.
type OpenRegisterRequest struct {
	RegisterName string          `json:"register_name" validate:"required"`
	InitialCash  decimal.Decimal `json:"initial_cash"`
}

// CloseRegisterRequest totales contados por el operador al cierre.
type CloseRegisterRequest struct {
	ReportedCash decimal.Decimal `json:"reported_cash"`
	ReportedCard decimal.Decimal `json:"reported_card"`
}

// SessionResponse salida de una sesión de caja.
type SessionResponse struct {
	ID           string           `json:"id"`
	RegisterName string           `json:"register_name"`
	OperatorID   string           `json:"operator_id"`
	OpenedAt     time.Time        `json:"opened_at"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
	InitialCash  decimal.Decimal  `json:"initial_cash"`
	ExpectedCash decimal.Decimal  `json:"expected_cash"`
	ExpectedCard decimal.Decimal  `json:"expected_card"`
	ReportedCash *decimal.Decimal `json:"reported_cash,omitempty"`
	ReportedCard *decimal.Decimal `json:"reported_card,omitempty"`
	CashDiff     *decimal.Decimal `json:"cash_diff,omitempty"`
	CardDiff     *decimal.Decimal `json:"card_diff,omitempty"`
	Status       string           `json:"status"`
}

// ClosingResponse resultado de un cierre: la sesión ya cerrada más la señal de
// divergencia que (si aplica) quedó en la trilla de auditoría.
type ClosingResponse struct {
	Session       SessionResponse `json:"session"`
	Reconciled    bool            `json:"reconciled"`
	AlertSeverity string          `json:"alert_severity,omitempty"`
}

// SessionListResponse lista de sesiones.
type SessionListResponse struct {
	Items []SessionResponse `json:"items"`
}
