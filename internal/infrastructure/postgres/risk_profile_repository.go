package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.RiskProfileRepository = (*RiskProfileRepo)(nil)

// RiskProfileRepo implementación de perfiles de riesgo sobre PostgreSQL.
type RiskProfileRepo struct {
	q Querier
}

// NewRiskProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRiskProfileRepository(q Querier) *RiskProfileRepo {
	return &RiskProfileRepo{q: q}
}

// Get obtiene el perfil de un operador, nil si no existe todavía.
func (r *RiskProfileRepo) Get(operatorID string) (*entity.RiskProfile, error) {
	query := `
		SELECT operator_id, score, event_count, last_event_at, updated_at
		FROM risk_profiles WHERE operator_id = $1`
	var p entity.RiskProfile
	err := r.q.QueryRow(context.Background(), query, operatorID).Scan(
		&p.OperatorID, &p.Score, &p.EventCount, &p.LastEventAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get risk profile: %w", err)
	}
	return &p, nil
}

// Upsert crea o reemplaza el perfil del operador.
func (r *RiskProfileRepo) Upsert(profile *entity.RiskProfile) error {
	query := `
		INSERT INTO risk_profiles (operator_id, score, event_count, last_event_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (operator_id) DO UPDATE
		SET score = EXCLUDED.score, event_count = EXCLUDED.event_count,
		    last_event_at = EXCLUDED.last_event_at, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		profile.OperatorID, profile.Score, profile.EventCount, profile.LastEventAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert risk profile: %w", err)
	}
	return nil
}

// List lista perfiles, score más alto primero.
func (r *RiskProfileRepo) List(limit, offset int) ([]*entity.RiskProfile, error) {
	query := `
		SELECT operator_id, score, event_count, last_event_at, updated_at
		FROM risk_profiles ORDER BY score DESC, operator_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list risk profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.RiskProfile
	for rows.Next() {
		var p entity.RiskProfile
		if err := rows.Scan(&p.OperatorID, &p.Score, &p.EventCount, &p.LastEventAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan risk profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
