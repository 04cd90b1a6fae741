package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// RiskProfileRepository define el puerto para los perfiles de riesgo por operador.
type RiskProfileRepository interface {
	Get(operatorID string) (*entity.RiskProfile, error)
	Upsert(profile *entity.RiskProfile) error
	List(limit, offset int) ([]*entity.RiskProfile, error)
}
