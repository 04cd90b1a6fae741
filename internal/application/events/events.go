// Package events define los tópicos del bus in-process y sus payloads.
// El publish es síncrono (EventBus por defecto), así los eventos de un mismo
// operador llegan al motor de riesgo en orden de creación.
package events

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// Tópicos del bus.
const (
	TopicLowStock   = "inventory.low_stock"
	TopicAuditEvent = "audit.event"
)

// LowStockAlert se publica cuando una operación deja el stock por debajo del
// mínimo del producto. Informativo: nunca bloquea ni hace fallar la operación.
type LowStockAlert struct {
	ProductID     string
	Barcode       string
	Name          string
	StockQuantity int
	MinStock      int
}

// AuditEventCreated se publica después de persistir un AuditEvent; el motor de
// riesgo lo consume para actualizar el score del operador.
type AuditEventCreated struct {
	Event entity.AuditEvent
}
