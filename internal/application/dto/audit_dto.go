package dto

import "time"

// FlagActionRequest entrada para registrar una acción sensible (override de
// precio, cancelación, devolución) en la trilla de auditoría.
type FlagActionRequest struct {
	OperatorID  string `json:"operator_id" validate:"required"`
	Action      string `json:"action" validate:"required,oneof=PRICE_OVERRIDE CANCELLATION REFUND"`
	Description string `json:"description"`
	Severity    string `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH"`
}

// AuditEventResponse salida de un evento de auditoría.
type AuditEventResponse struct {
	ID          string    `json:"id"`
	OperatorID  string    `json:"operator_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditListResponse lista paginada de eventos.
type AuditListResponse struct {
	Items []AuditEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
