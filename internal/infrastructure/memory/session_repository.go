package memory

import (
	"sort"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// SessionRepository implementación en memoria del puerto de sesiones de caja.
// Create verifica bajo lock que no haya otra sesión OPEN para la misma caja,
// el equivalente al índice único parcial de PostgreSQL.
type SessionRepository struct {
	store *Store
}

// NewSessionRepository crea el repositorio de sesiones.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Create(session *entity.RegisterSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range s.sessions {
		if existing.RegisterName == session.RegisterName && existing.Status == entity.SessionOpen {
			return domain.ErrRegisterAlreadyOpen
		}
	}
	s.sessions[session.ID] = *session
	s.sessionOrder = append(s.sessionOrder, session.ID)
	return nil
}

func (r *SessionRepository) GetByID(id string) (*entity.RegisterSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

// GetForUpdate en memoria equivale a GetByID: el txMu del Store ya da exclusividad.
func (r *SessionRepository) GetForUpdate(id string) (*entity.RegisterSession, error) {
	return r.GetByID(id)
}

func (r *SessionRepository) GetOpenByRegister(registerName string) (*entity.RegisterSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sessionOrder {
		sess := s.sessions[id]
		if sess.RegisterName == registerName && sess.Status == entity.SessionOpen {
			return &sess, nil
		}
	}
	return nil, nil
}

func (r *SessionRepository) Update(session *entity.RegisterSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return domain.ErrNotFound
	}
	s.sessions[session.ID] = *session
	return nil
}

func (r *SessionRepository) ListOpen() ([]*entity.RegisterSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.RegisterSession
	for _, id := range s.sessionOrder {
		sess := s.sessions[id]
		if sess.Status == entity.SessionOpen {
			out = append(out, &sess)
		}
	}
	return out, nil
}

func (r *SessionRepository) ListRecentClosed(limit int) ([]*entity.RegisterSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var closed []*entity.RegisterSession
	for _, id := range s.sessionOrder {
		sess := s.sessions[id]
		if sess.Status == entity.SessionClosed {
			closed = append(closed, &sess)
		}
	}
	sort.Slice(closed, func(i, j int) bool {
		// ClosedAt nunca es nil en una sesión CLOSED
		return closed[i].ClosedAt.After(*closed[j].ClosedAt)
	})
	if limit > 0 && len(closed) > limit {
		closed = closed[:limit]
	}
	return closed, nil
}
