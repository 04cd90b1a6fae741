package memory

import (
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// SaleRepository implementación en memoria del puerto de ventas.
type SaleRepository struct {
	store *Store
}

// NewSaleRepository crea el repositorio de ventas.
func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{store: store}
}

func (r *SaleRepository) Create(sale *entity.Sale) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	stored := *sale
	stored.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	s.sales[sale.ID] = stored
	s.saleOrder = append(s.saleOrder, sale.ID)
	return nil
}

func (r *SaleRepository) GetByID(id string) (*entity.Sale, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	sale.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	return &sale, nil
}

func (r *SaleRepository) ListBySession(sessionID string) ([]*entity.Sale, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Sale
	for _, id := range s.saleOrder {
		sale := s.sales[id]
		if sale.SessionID != sessionID {
			continue
		}
		sale.Lines = append([]entity.SaleLine(nil), sale.Lines...)
		out = append(out, &sale)
	}
	return out, nil
}

// StockMovementRepository implementación en memoria del historial de movimientos.
type StockMovementRepository struct {
	store *Store
}

// NewStockMovementRepository crea el repositorio de movimientos.
func NewStockMovementRepository(store *Store) *StockMovementRepository {
	return &StockMovementRepository{store: store}
}

func (r *StockMovementRepository) Create(movement *entity.StockMovement) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, *movement)
	return nil
}

func (r *StockMovementRepository) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			matched = append(matched, m)
		}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.StockMovement, 0, end-offset)
	for i := offset; i < end; i++ {
		m := matched[i]
		out = append(out, &m)
	}
	return out, nil
}
