package entity

import "time"

// RiskProfile es la señal antifraude por operador: score acotado [0,100] derivado
// de eventos de auditoría ponderados. Solo lo muta el motor de riesgo.
type RiskProfile struct {
	OperatorID  string
	Score       int // 0..100
	EventCount  int
	LastEventAt *time.Time
	UpdatedAt   time.Time
}
