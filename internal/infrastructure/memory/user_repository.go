package memory

import (
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// UserRepository implementación en memoria del puerto de usuarios.
type UserRepository struct {
	store *Store
}

// NewUserRepository crea el repositorio de usuarios.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	s.users[user.ID] = *user
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u, ok := s.users[id]; ok && u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(limit, offset int) ([]*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(s.userOrder, limit, offset, func(id string) *entity.User {
		u := s.users[id]
		return &u
	}), nil
}

// TimeLogRepository implementación en memoria de marcaciones de jornada.
type TimeLogRepository struct {
	store *Store
}

// NewTimeLogRepository crea el repositorio de marcaciones.
func NewTimeLogRepository(store *Store) *TimeLogRepository {
	return &TimeLogRepository{store: store}
}

func (r *TimeLogRepository) Create(log *entity.TimeLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timeLogs[log.ID]; ok {
		return domain.ErrDuplicate
	}
	s.timeLogs[log.ID] = *log
	s.timeLogOrder = append(s.timeLogOrder, log.ID)
	return nil
}

func (r *TimeLogRepository) GetOpenByUser(userID string) (*entity.TimeLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.timeLogOrder {
		l := s.timeLogs[id]
		if l.UserID == userID && l.ClockOut == nil {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *TimeLogRepository) Update(log *entity.TimeLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timeLogs[log.ID]; !ok {
		return domain.ErrNotFound
	}
	s.timeLogs[log.ID] = *log
	return nil
}

func (r *TimeLogRepository) ListByUser(userID string, limit, offset int) ([]*entity.TimeLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for _, id := range s.timeLogOrder {
		if s.timeLogs[id].UserID == userID {
			ids = append(ids, id)
		}
	}
	return page(ids, limit, offset, func(id string) *entity.TimeLog {
		l := s.timeLogs[id]
		return &l
	}), nil
}
