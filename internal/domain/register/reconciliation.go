// Package register implementa la conciliación de cierre de caja (servicio de dominio).
package register

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// Policy parametriza la conciliación. El umbral es configurable: el valor de
// referencia del producto es Kz 500,00 ("divergencia acima de Kz 500 notifica
// a la gerencia").
type Policy struct {
	DiscrepancyThreshold decimal.Decimal
}

// DefaultPolicy usa el umbral de referencia de 500 unidades monetarias.
func DefaultPolicy() Policy {
	return Policy{DiscrepancyThreshold: decimal.NewFromInt(500)}
}

// Discrepancy calcula reportado - esperado. Negativo: falta dinero en caja.
func Discrepancy(reported, expected decimal.Decimal) decimal.Decimal {
	return reported.Sub(expected)
}

// SeverityFor decide si una divergencia dispara evento de auditoría y con qué
// severidad. Regla: estrictamente mayor que el umbral dispara ("acima de");
// exactamente en el umbral no. |d| > 2*umbral escala a HIGH, si no MEDIUM.
func (p Policy) SeverityFor(discrepancy decimal.Decimal) (severity string, triggered bool) {
	abs := discrepancy.Abs()
	if abs.LessThanOrEqual(p.DiscrepancyThreshold) {
		return "", false
	}
	if abs.GreaterThan(p.DiscrepancyThreshold.Mul(decimal.NewFromInt(2))) {
		return entity.SeverityHigh, true
	}
	return entity.SeverityMedium, true
}
