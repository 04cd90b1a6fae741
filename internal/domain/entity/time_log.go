package entity

import "time"

// TimeLog es una marcación de jornada (entrada/salida) de un operador.
type TimeLog struct {
	ID       string
	UserID   string
	ClockIn  time.Time
	ClockOut *time.Time
}
