package memory

import (
	"time"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ProductRepository implementación en memoria del puerto de productos.
type ProductRepository struct {
	store *Store
}

// NewProductRepository crea el repositorio de productos.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, p := range s.products {
		if p.Barcode == product.Barcode {
			return domain.ErrDuplicate
		}
	}
	s.products[product.ID] = *product
	s.productOrder = append(s.productOrder, product.ID)
	return nil
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) GetByBarcode(barcode string) (*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.productOrder {
		if p, ok := s.products[id]; ok && p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el txMu del Store ya da exclusividad.
func (r *ProductRepository) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepository) Update(product *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	s.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) UpdateStock(productID string, stock int, updatedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = stock
	p.UpdatedAt = updatedAt
	s.products[productID] = p
	return nil
}

func (r *ProductRepository) MarkRestocked(productID string, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	t := at
	p.LastRestock = &t
	p.UpdatedAt = at
	s.products[productID] = p
	return nil
}

func (r *ProductRepository) List(limit, offset int) ([]*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(s.productOrder, limit, offset, func(id string) *entity.Product {
		p := s.products[id]
		return &p
	}), nil
}

// page aplica limit/offset sobre un orden de inserción.
func page[T any](order []string, limit, offset int, get func(string) *T) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(order) {
		return nil
	}
	end := len(order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*T, 0, end-offset)
	for _, id := range order[offset:end] {
		out = append(out, get(id))
	}
	return out
}
