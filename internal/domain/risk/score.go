// Package risk implementa el scoring de riesgo por operador (servicio de dominio).
// El score es un fold puro sobre la secuencia ordenada de eventos de auditoría
// del operador: reaplicar la misma secuencia reproduce siempre el mismo score,
// lo que permite reconstrucción auditada tras un reinicio.
package risk

import (
	"time"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// Límites del score.
const (
	ScoreMin = 0
	ScoreMax = 100
)

// Clasificaciones derivadas del score.
const (
	ClassLow      = "LOW"
	ClassMedium   = "MEDIUM"
	ClassCritical = "CRITICAL"
)

// Weights son los incrementos por severidad. Parámetro de política, no constante
// de producto: se cargan desde configuración.
type Weights struct {
	Low    int
	Medium int
	High   int
}

// Bands son los límites inferiores (inclusivos) de cada banda de clasificación.
// score < Medium -> LOW; Medium <= score < Critical -> MEDIUM; score >= Critical -> CRITICAL.
type Bands struct {
	Medium   int
	Critical int
}

// DefaultWeights y DefaultBands reflejan los valores ilustrativos del producto
// (88 = crítico, 42 = medio).
var (
	DefaultWeights = Weights{Low: 2, Medium: 10, High: 25}
	DefaultBands   = Bands{Medium: 40, Critical: 70}
)

// ForSeverity devuelve el incremento para una severidad; severidades desconocidas no suman.
func (w Weights) ForSeverity(severity string) int {
	switch severity {
	case entity.SeverityLow:
		return w.Low
	case entity.SeverityMedium:
		return w.Medium
	case entity.SeverityHigh:
		return w.High
	}
	return 0
}

// Apply suma el incremento por severidad y acota el resultado a [ScoreMin, ScoreMax].
func Apply(score int, severity string, w Weights) int {
	return clamp(score + w.ForSeverity(severity))
}

// Replay reconstruye el score desde cero aplicando los eventos en orden.
// Determinismo: mismo input, mismo score, independiente de reinicios del proceso.
func Replay(events []entity.AuditEvent, w Weights) int {
	score := ScoreMin
	for _, ev := range events {
		score = Apply(score, ev.Severity, w)
	}
	return score
}

// Classify devuelve la banda del score.
func Classify(score int, b Bands) string {
	switch {
	case score >= b.Critical:
		return ClassCritical
	case score >= b.Medium:
		return ClassMedium
	}
	return ClassLow
}

// Decay enfría el score hacia 0: pointsPerDay por cada día completo transcurrido
// sin eventos nuevos. Función de política; días parciales no descuentan, así el
// resultado es determinista para un elapsed dado.
func Decay(score int, elapsed time.Duration, pointsPerDay int) int {
	if pointsPerDay <= 0 || elapsed <= 0 {
		return clamp(score)
	}
	days := int(elapsed.Hours() / 24)
	return clamp(score - days*pointsPerDay)
}

func clamp(score int) int {
	if score < ScoreMin {
		return ScoreMin
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
