package memory

import (
	"sort"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// AuditEventRepository implementación en memoria de la trilla de auditoría.
// Solo append y lectura; no existe borrado ni edición.
type AuditEventRepository struct {
	store *Store
}

// NewAuditEventRepository crea el repositorio de eventos de auditoría.
func NewAuditEventRepository(store *Store) *AuditEventRepository {
	return &AuditEventRepository{store: store}
}

func (r *AuditEventRepository) Create(event *entity.AuditEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditEvents = append(s.auditEvents, *event)
	return nil
}

func (r *AuditEventRepository) ListByOperator(operatorID string, limit, offset int) ([]*entity.AuditEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []entity.AuditEvent
	for _, e := range s.auditEvents {
		if e.OperatorID == operatorID {
			matched = append(matched, e)
		}
	}
	return pageEvents(matched, limit, offset), nil
}

func (r *AuditEventRepository) List(limit, offset int) ([]*entity.AuditEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageEvents(s.auditEvents, limit, offset), nil
}

func pageEvents(events []entity.AuditEvent, limit, offset int) []*entity.AuditEvent {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(events) {
		return nil
	}
	end := len(events)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.AuditEvent, 0, end-offset)
	for i := offset; i < end; i++ {
		e := events[i]
		out = append(out, &e)
	}
	return out
}

// RiskProfileRepository implementación en memoria de perfiles de riesgo.
type RiskProfileRepository struct {
	store *Store
}

// NewRiskProfileRepository crea el repositorio de perfiles.
func NewRiskProfileRepository(store *Store) *RiskProfileRepository {
	return &RiskProfileRepository{store: store}
}

func (r *RiskProfileRepository) Get(operatorID string) (*entity.RiskProfile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.riskProfiles[operatorID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *RiskProfileRepository) Upsert(profile *entity.RiskProfile) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riskProfiles[profile.OperatorID] = *profile
	return nil
}

func (r *RiskProfileRepository) List(limit, offset int) ([]*entity.RiskProfile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.riskProfiles))
	for id := range s.riskProfiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil, nil
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.RiskProfile, 0, end-offset)
	for _, id := range ids[offset:end] {
		p := s.riskProfiles[id]
		out = append(out, &p)
	}
	return out, nil
}
