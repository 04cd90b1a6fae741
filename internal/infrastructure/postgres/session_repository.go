package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
// La unicidad de sesión abierta por caja la garantiza el índice único parcial
// uq_register_sessions_open (register_name WHERE status = 'OPEN'): el insert
// es el check-then-act atómico.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

const sessionColumns = `id, register_name, operator_id, opened_at, closed_at, initial_cash, expected_cash, expected_card, reported_cash, reported_card, cash_diff, card_diff, status`

// Create persiste una sesión nueva. Traduce la violación del índice parcial a
// ErrRegisterAlreadyOpen.
func (r *SessionRepo) Create(session *entity.RegisterSession) error {
	query := `
		INSERT INTO register_sessions (id, register_name, operator_id, opened_at, closed_at, initial_cash, expected_cash, expected_card, reported_cash, reported_card, cash_diff, card_diff, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.RegisterName, session.OperatorID, session.OpenedAt, session.ClosedAt,
		session.InitialCash, session.ExpectedCash, session.ExpectedCard,
		session.ReportedCash, session.ReportedCard, session.CashDiff, session.CardDiff, session.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "uq_register_sessions_open" {
				return domain.ErrRegisterAlreadyOpen
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *SessionRepo) GetByID(id string) (*entity.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE id = $1`
	return scanSession(r.q.QueryRow(context.Background(), query, id), "get session")
}

// GetForUpdate bloquea la fila de la sesión: el cierre de caja se serializa aquí.
func (r *SessionRepo) GetForUpdate(id string) (*entity.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE id = $1 FOR UPDATE`
	return scanSession(r.q.QueryRow(context.Background(), query, id), "lock session")
}

// GetOpenByRegister obtiene la sesión OPEN de una caja, si existe.
func (r *SessionRepo) GetOpenByRegister(registerName string) (*entity.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE register_name = $1 AND status = 'OPEN'`
	return scanSession(r.q.QueryRow(context.Background(), query, registerName), "get open session")
}

// Update actualiza la sesión completa (acumulación de esperado, cierre).
func (r *SessionRepo) Update(session *entity.RegisterSession) error {
	query := `
		UPDATE register_sessions SET closed_at = $2, expected_cash = $3, expected_card = $4, reported_cash = $5, reported_card = $6, cash_diff = $7, card_diff = $8, status = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.ClosedAt, session.ExpectedCash, session.ExpectedCard,
		session.ReportedCash, session.ReportedCard, session.CashDiff, session.CardDiff, session.Status,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// ListOpen lista las sesiones abiertas.
func (r *SessionRepo) ListOpen() ([]*entity.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE status = 'OPEN' ORDER BY opened_at`
	return r.list(query)
}

// ListRecentClosed lista las últimas sesiones cerradas.
func (r *SessionRepo) ListRecentClosed(limit int) ([]*entity.RegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM register_sessions WHERE status = 'CLOSED' ORDER BY closed_at DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *SessionRepo) list(query string, args ...any) ([]*entity.RegisterSession, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.RegisterSession
	for rows.Next() {
		var s entity.RegisterSession
		if err := rows.Scan(&s.ID, &s.RegisterName, &s.OperatorID, &s.OpenedAt, &s.ClosedAt,
			&s.InitialCash, &s.ExpectedCash, &s.ExpectedCard,
			&s.ReportedCash, &s.ReportedCard, &s.CashDiff, &s.CardDiff, &s.Status); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func scanSession(row pgx.Row, op string) (*entity.RegisterSession, error) {
	var s entity.RegisterSession
	err := row.Scan(&s.ID, &s.RegisterName, &s.OperatorID, &s.OpenedAt, &s.ClosedAt,
		&s.InitialCash, &s.ExpectedCash, &s.ExpectedCard,
		&s.ReportedCash, &s.ReportedCard, &s.CashDiff, &s.CardDiff, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
