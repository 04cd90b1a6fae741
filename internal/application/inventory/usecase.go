package inventory

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// LedgerUseCase es el libro de stock: consultas de disponibilidad, reservas de
// validación, bajas confirmadas, reabastecimientos y ajustes manuales.
// Toda mutación corre dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) y queda registrada como StockMovement.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	bus         EventBus.Bus
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository, bus EventBus.Bus) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo, bus: bus}
}

// GetAvailable devuelve el stock actual del producto. Sin efectos.
func (uc *LedgerUseCase) GetAvailable(productID string) (int, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.StockQuantity, nil
}

// Reserve valida que qty unidades estén disponibles. No muta stock: es el check
// de carrito; la disponibilidad se revalida al confirmar porque otras ventas
// pueden haberla cambiado.
func (uc *LedgerUseCase) Reserve(productID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	available, err := uc.GetAvailable(productID)
	if err != nil {
		return err
	}
	if qty > available {
		return domain.ErrInsufficientStock
	}
	return nil
}

// CommitDecrement descuenta qty unidades de forma atómica: bloquea la fila,
// revalida la disponibilidad y falla sin efecto parcial si ya no alcanza.
func (uc *LedgerUseCase) CommitDecrement(ctx context.Context, productID string, qty int, refID, userID string) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	var alert *events.LowStockAlert
	err := uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.AuditEventRepository,
	) error {
		product, err := DecrementLocked(productRepo, movRepo, productID, qty, refID, userID, now)
		if err != nil {
			return err
		}
		alert = lowStockAlert(product)
		return nil
	})
	if err != nil {
		return err
	}
	uc.publishAlert(alert)
	return nil
}

// Restock incrementa stock por reabastecimiento y estampa LastRestock.
func (uc *LedgerUseCase) Restock(ctx context.Context, productID string, qty int, userID string) error {
	if qty < 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.AuditEventRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.StockQuantity += qty
		if err := productRepo.UpdateStock(productID, product.StockQuantity, now); err != nil {
			return err
		}
		if err := productRepo.MarkRestocked(productID, now); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: uuid.New().String(),
			ProductID:     productID,
			Type:          entity.MovementTypeRESTOCK,
			Quantity:      qty,
			UnitPrice:     product.CostPrice,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return movRepo.Create(mov)
	})
}

// AdjustStock aplica un ajuste manual (delta positivo o negativo) y deja un
// evento STOCK_ADJUSTMENT en la trilla de auditoría dentro de la misma transacción.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, productID string, delta int, reason, userID string) error {
	if delta == 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	var alert *events.LowStockAlert
	var created *entity.AuditEvent
	err := uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		auditRepo repository.AuditEventRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.StockQuantity + delta
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		product.StockQuantity = newStock
		if err := productRepo.UpdateStock(productID, newStock, now); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: uuid.New().String(),
			ProductID:     productID,
			Type:          entity.MovementTypeADJUSTMENT,
			Quantity:      delta,
			UnitPrice:     product.CostPrice,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = &entity.AuditEvent{
			ID:          uuid.New().String(),
			OperatorID:  userID,
			Action:      entity.ActionStockAdjustment,
			Description: reason,
			Severity:    entity.SeverityLow,
			CreatedAt:   now,
		}
		if err := auditRepo.Create(created); err != nil {
			return err
		}
		alert = lowStockAlert(product)
		return nil
	})
	if err != nil {
		return err
	}
	uc.publishAlert(alert)
	if uc.bus != nil && created != nil {
		uc.bus.Publish(events.TopicAuditEvent, events.AuditEventCreated{Event: *created})
	}
	return nil
}

// DecrementLocked es la baja por venta compartida con el procesador de ventas:
// bloquea la fila, revalida stock, descuenta y registra el movimiento SALE.
// Devuelve el producto ya actualizado para que el caller evalúe stock mínimo.
func DecrementLocked(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	productID string, qty int, txID, userID string, now time.Time,
) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.StockQuantity < qty {
		return nil, domain.ErrInsufficientStock
	}
	product.StockQuantity -= qty
	if err := productRepo.UpdateStock(productID, product.StockQuantity, now); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		ProductID:     productID,
		Type:          entity.MovementTypeSALE,
		Quantity:      -qty,
		UnitPrice:     product.SalePrice,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return product, nil
}

func lowStockAlert(p *entity.Product) *events.LowStockAlert {
	if !p.BelowMinStock() {
		return nil
	}
	return &events.LowStockAlert{
		ProductID:     p.ID,
		Barcode:       p.Barcode,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
	}
}

func (uc *LedgerUseCase) publishAlert(alert *events.LowStockAlert) {
	if uc.bus == nil || alert == nil {
		return
	}
	uc.bus.Publish(events.TopicLowStock, *alert)
}
