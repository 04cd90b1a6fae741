package repository

import (
	"time"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que dos ventas
// concurrentes no puedan sobrevender el mismo producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int, updatedAt time.Time) error
	MarkRestocked(productID string, at time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
}
