package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas finalizadas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListBySession(sessionID string) ([]*entity.Sale, error)
}
