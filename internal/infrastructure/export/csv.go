// Package export serializa la trilla de auditoría y el catálogo a formatos
// portables (CSV, XML) para revisión externa.
package export

import (
	"github.com/gocarina/gocsv"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// auditEventRow fila CSV de un evento de auditoría.
type auditEventRow struct {
	ID          string `csv:"id"`
	OperatorID  string `csv:"operator_id"`
	Action      string `csv:"action"`
	Description string `csv:"description"`
	Severity    string `csv:"severity"`
	CreatedAt   string `csv:"created_at"`
}

// productRow fila CSV de un producto del catálogo.
type productRow struct {
	Barcode       string `csv:"barcode"`
	Name          string `csv:"name"`
	Category      string `csv:"category"`
	CostPrice     string `csv:"cost_price"`
	SalePrice     string `csv:"sale_price"`
	StockQuantity int    `csv:"stock_quantity"`
	MinStock      int    `csv:"min_stock"`
	LastRestock   string `csv:"last_restock"`
}

// AuditTrailCSV serializa la trilla de auditoría a CSV.
func AuditTrailCSV(events []*entity.AuditEvent) (string, error) {
	rows := make([]auditEventRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, auditEventRow{
			ID:          e.ID,
			OperatorID:  e.OperatorID,
			Action:      e.Action,
			Description: e.Description,
			Severity:    e.Severity,
			CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return gocsv.MarshalString(&rows)
}

// ProductCatalogCSV serializa el catálogo de productos a CSV.
func ProductCatalogCSV(products []*entity.Product) (string, error) {
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		lastRestock := ""
		if p.LastRestock != nil {
			lastRestock = p.LastRestock.Format("2006-01-02")
		}
		rows = append(rows, productRow{
			Barcode:       p.Barcode,
			Name:          p.Name,
			Category:      p.Category,
			CostPrice:     p.CostPrice.StringFixed(2),
			SalePrice:     p.SalePrice.StringFixed(2),
			StockQuantity: p.StockQuantity,
			MinStock:      p.MinStock,
			LastRestock:   lastRestock,
		})
	}
	return gocsv.MarshalString(&rows)
}
