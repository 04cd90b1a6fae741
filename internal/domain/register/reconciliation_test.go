package register_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/register"
)

func kz(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// discrepancia = reportado - esperado, exacto: 5000 esperado y 4500 reportado
// producen -500.
func TestDiscrepancy_Exacta(t *testing.T) {
	d := register.Discrepancy(kz(4500), kz(5000))
	assert.True(t, d.Equal(kz(-500)), "esperaba -500, obtuve %s", d)
}

func TestDiscrepancy_CeroCuandoConcilia(t *testing.T) {
	d := register.Discrepancy(kz(7400), kz(7400))
	assert.True(t, d.IsZero())
}

// Regla del umbral: estrictamente mayor dispara; exactamente en el umbral no.
func TestSeverityFor_UmbralEstricto(t *testing.T) {
	p := register.DefaultPolicy() // umbral 500

	_, triggered := p.SeverityFor(kz(-500))
	assert.False(t, triggered, "|d| = umbral no debe disparar evento")

	sev, triggered := p.SeverityFor(kz(-500.01))
	assert.True(t, triggered)
	assert.Equal(t, entity.SeverityMedium, sev)
}

func TestSeverityFor_EscalaAHigh(t *testing.T) {
	p := register.DefaultPolicy()

	// 750 está entre umbral y 2x umbral: MEDIUM.
	sev, triggered := p.SeverityFor(kz(750))
	assert.True(t, triggered)
	assert.Equal(t, entity.SeverityMedium, sev)

	// Exactamente 2x umbral sigue siendo MEDIUM (se exige estrictamente mayor).
	sev, triggered = p.SeverityFor(kz(1000))
	assert.True(t, triggered)
	assert.Equal(t, entity.SeverityMedium, sev)

	// -1420 (caso real del historial de cierres) supera 2x umbral: HIGH.
	sev, triggered = p.SeverityFor(kz(-1420))
	assert.True(t, triggered)
	assert.Equal(t, entity.SeverityHigh, sev)
}

func TestSeverityFor_SinDivergenciaNoDispara(t *testing.T) {
	p := register.DefaultPolicy()
	_, triggered := p.SeverityFor(decimal.Zero)
	assert.False(t, triggered)
}
