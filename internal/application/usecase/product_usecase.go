package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock NO se edita aquí:
// se maneja vía movimientos (ventas, reabastecimientos, ajustes).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByBarcode(in.Barcode)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Barcode:    in.Barcode,
		Name:       in.Name,
		Category:   in.Category,
		SupplierID: in.SupplierID,
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
		MinStock:   in.MinStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras (búsqueda del PDV).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza datos del catálogo. No permite tocar StockQuantity.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Products devuelve entidades crudas (para exportadores CSV).
func (uc *ProductUseCase) Products(limit, offset int) ([]*entity.Product, error) {
	return uc.repo.List(limit, offset)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Category:      p.Category,
		SupplierID:    p.SupplierID,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		LastRestock:   p.LastRestock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
