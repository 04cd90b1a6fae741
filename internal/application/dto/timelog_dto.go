package dto

import "time"

// TimeLogResponse salida de una marcación de jornada.
type TimeLogResponse struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

// TimeLogListResponse lista de marcaciones.
type TimeLogListResponse struct {
	Items []TimeLogResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
