package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.TimeLogRepository = (*TimeLogRepo)(nil)

// TimeLogRepo implementación de marcaciones de jornada sobre PostgreSQL.
type TimeLogRepo struct {
	q Querier
}

// NewTimeLogRepository construye el adaptador.
func NewTimeLogRepository(q Querier) *TimeLogRepo {
	return &TimeLogRepo{q: q}
}

// Create persiste una marcación de entrada.
func (r *TimeLogRepo) Create(log *entity.TimeLog) error {
	query := `INSERT INTO time_logs (id, user_id, clock_in, clock_out) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, log.ID, log.UserID, log.ClockIn, log.ClockOut)
	if err != nil {
		return fmt.Errorf("insert time log: %w", err)
	}
	return nil
}

// GetOpenByUser obtiene la marcación sin salida de un usuario, nil si no hay.
func (r *TimeLogRepo) GetOpenByUser(userID string) (*entity.TimeLog, error) {
	query := `SELECT id, user_id, clock_in, clock_out FROM time_logs WHERE user_id = $1 AND clock_out IS NULL`
	var l entity.TimeLog
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&l.ID, &l.UserID, &l.ClockIn, &l.ClockOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open time log: %w", err)
	}
	return &l, nil
}

// Update registra la salida de la marcación.
func (r *TimeLogRepo) Update(log *entity.TimeLog) error {
	query := `UPDATE time_logs SET clock_out = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, log.ID, log.ClockOut)
	if err != nil {
		return fmt.Errorf("update time log: %w", err)
	}
	return nil
}

// ListByUser lista marcaciones de un usuario, más reciente primero.
func (r *TimeLogRepo) ListByUser(userID string, limit, offset int) ([]*entity.TimeLog, error) {
	query := `
		SELECT id, user_id, clock_in, clock_out
		FROM time_logs WHERE user_id = $1 ORDER BY clock_in DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeLog
	for rows.Next() {
		var l entity.TimeLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.ClockIn, &l.ClockOut); err != nil {
			return nil, fmt.Errorf("scan time log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
