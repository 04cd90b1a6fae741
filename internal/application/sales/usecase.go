package sales

import (
	"context"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// CheckoutUseCase finaliza ventas: revalida y descuenta stock de todas las
// líneas en una sola transacción, persiste la venta inmutable y acumula el
// total en el efectivo (o tarjetas) esperado de la sesión de caja.
type CheckoutUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	bus         EventBus.Bus
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner TxRunner, productRepo repository.ProductRepository, bus EventBus.Bus) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, productRepo: productRepo, bus: bus}
}

// BuildCart arma un carrito desde las líneas del request, validando existencia
// y disponibilidad producto a producto (el precio queda congelado aquí).
func (uc *CheckoutUseCase) BuildCart(lines []dto.SaleLineRequest) (*Cart, error) {
	cart := NewCart()
	for _, l := range lines {
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if err := cart.AddLine(product, l.Quantity); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Finalize confirma la venta. Falla con ErrEmptyCart sin líneas y con
// ErrSessionNotOpen si la sesión no está abierta. Dentro de la transacción cada
// línea se revalida con la fila bloqueada: si alguna ya no alcanza
// (ErrInsufficientStock) la transacción se revierte completa, sin descuentos
// parciales.
func (uc *CheckoutUseCase) Finalize(ctx context.Context, cart *Cart, sessionID, operatorID, paymentMethod string) (*dto.SaleResponse, error) {
	if cart == nil || cart.Empty() {
		return nil, domain.ErrEmptyCart
	}
	if paymentMethod != entity.PaymentCash && paymentMethod != entity.PaymentCard {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	saleID := uuid.New().String()
	total := cart.Total()

	// Bloqueo de filas en orden estable de producto para no interbloquear dos
	// checkouts concurrentes.
	lines := cart.Lines()
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	var sale *entity.Sale
	var alerts []events.LowStockAlert

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		sessionRepo repository.SessionRepository,
	) error {
		session, err := sessionRepo.GetForUpdate(sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.IsOpen() {
			return domain.ErrSessionNotOpen
		}

		for _, l := range lines {
			product, err := inventory.DecrementLocked(productRepo, movRepo, l.ProductID, l.Quantity, saleID, operatorID, now)
			if err != nil {
				return err
			}
			if product.BelowMinStock() {
				alerts = append(alerts, events.LowStockAlert{
					ProductID:     product.ID,
					Barcode:       product.Barcode,
					Name:          product.Name,
					StockQuantity: product.StockQuantity,
					MinStock:      product.MinStock,
				})
			}
		}

		sale = buildSale(saleID, sessionID, operatorID, paymentMethod, total, now, cart.Lines())
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// recordSale: el esperado de la sesión solo crece por ventas
		// finalizadas, dentro de la misma transacción del checkout.
		switch paymentMethod {
		case entity.PaymentCash:
			session.ExpectedCash = session.ExpectedCash.Add(total)
		case entity.PaymentCard:
			session.ExpectedCard = session.ExpectedCard.Add(total)
		}
		return sessionRepo.Update(session)
	})
	if err != nil {
		return nil, err
	}

	// Las alertas de stock mínimo se publican después del commit: informan,
	// nunca bloquean la venta.
	if uc.bus != nil {
		for _, a := range alerts {
			uc.bus.Publish(events.TopicLowStock, a)
		}
	}
	return toSaleResponse(sale), nil
}

func buildSale(saleID, sessionID, operatorID, paymentMethod string, total decimal.Decimal, now time.Time, lines []CartLine) *entity.Sale {
	sale := &entity.Sale{
		ID:            saleID,
		SessionID:     sessionID,
		OperatorID:    operatorID,
		PaymentMethod: paymentMethod,
		Total:         total,
		FinalizedAt:   now,
	}
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		sale.Lines = append(sale.Lines, entity.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.UnitPrice.Mul(qty),
		})
	}
	return sale
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:            s.ID,
		SessionID:     s.SessionID,
		OperatorID:    s.OperatorID,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		FinalizedAt:   s.FinalizedAt,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}
