package dto

import "time"

// RiskProfileResponse proyección de solo lectura del perfil de riesgo.
type RiskProfileResponse struct {
	OperatorID     string     `json:"operator_id"`
	Score          int        `json:"score"`
	Classification string     `json:"classification"`
	EventCount     int        `json:"event_count"`
	LastEventAt    *time.Time `json:"last_event_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RiskProfileListResponse lista de perfiles.
type RiskProfileListResponse struct {
	Items []RiskProfileResponse `json:"items"`
}
