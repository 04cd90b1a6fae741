package entity

import "time"

// Acciones auditadas.
const (
	ActionPriceOverride       = "PRICE_OVERRIDE"
	ActionCancellation        = "CANCELLATION"
	ActionRefund              = "REFUND"
	ActionStockAdjustment     = "STOCK_ADJUSTMENT"
	ActionLogin               = "LOGIN"
	ActionRegisterDiscrepancy = "REGISTER_DISCREPANCY"
)

// Severidades de un evento de auditoría.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// AuditEvent es la trilla de auditoría: generado como efecto colateral por otros
// componentes (ventas, cierre de caja, login), append-only, jamás editado ni borrado.
type AuditEvent struct {
	ID          string
	OperatorID  string
	Action      string
	Description string
	Severity    string
	CreatedAt   time.Time
}
