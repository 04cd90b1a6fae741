package risk_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/risk"
)

// El score debe ser un fold determinista: [HIGH, MEDIUM, LOW] con pesos [25,10,2]
// desde 0 produce exactamente 37, sin importar cuántas veces se reaplique.
func TestReplay_Determinista(t *testing.T) {
	events := []entity.AuditEvent{
		{Severity: entity.SeverityHigh},
		{Severity: entity.SeverityMedium},
		{Severity: entity.SeverityLow},
	}

	first := risk.Replay(events, risk.DefaultWeights)
	second := risk.Replay(events, risk.DefaultWeights)

	assert.Equal(t, 37, first)
	assert.Equal(t, first, second, "reaplicar la misma secuencia debe reproducir el mismo score")
}

func TestReplay_EquivaleAAplicarEnOrden(t *testing.T) {
	events := []entity.AuditEvent{
		{Severity: entity.SeverityMedium},
		{Severity: entity.SeverityMedium},
		{Severity: entity.SeverityHigh},
	}

	score := 0
	for _, ev := range events {
		score = risk.Apply(score, ev.Severity, risk.DefaultWeights)
	}

	assert.Equal(t, score, risk.Replay(events, risk.DefaultWeights))
}

func TestApply_AcotadoA100(t *testing.T) {
	score := 0
	// 5 eventos HIGH = 125 puntos crudos; el score queda acotado en 100.
	for i := 0; i < 5; i++ {
		score = risk.Apply(score, entity.SeverityHigh, risk.DefaultWeights)
	}
	assert.Equal(t, 100, score)
}

func TestApply_SeveridadDesconocidaNoSuma(t *testing.T) {
	assert.Equal(t, 10, risk.Apply(10, "WHATEVER", risk.DefaultWeights))
}

// Bandas: <40 LOW, 40..69 MEDIUM (40 inclusivo), >=70 CRITICAL.
// 88 crítico y 42 medio reflejan los datos ilustrativos del producto.
func TestClassify_Bandas(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, risk.ClassLow},
		{39, risk.ClassLow},
		{40, risk.ClassMedium},
		{42, risk.ClassMedium},
		{69, risk.ClassMedium},
		{70, risk.ClassCritical},
		{88, risk.ClassCritical},
		{100, risk.ClassCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, risk.Classify(tc.score, risk.DefaultBands), "score %d", tc.score)
	}
}

func TestDecay_EnfriaHaciaCero(t *testing.T) {
	// 3 días completos a 1 punto/día.
	got := risk.Decay(42, 72*time.Hour, 1)
	assert.Equal(t, 39, got)

	// Días parciales no descuentan.
	assert.Equal(t, 42, risk.Decay(42, 23*time.Hour, 1))

	// Nunca baja de 0.
	assert.Equal(t, 0, risk.Decay(5, 10*24*time.Hour, 1))
}

func TestDecay_SinPoliticaNoCambia(t *testing.T) {
	assert.Equal(t, 42, risk.Decay(42, 72*time.Hour, 0))
}
