package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/events"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/infrastructure/memory"
)

const (
	testOperatorID = "op-001"
	testSessionID  = "ses-001"
)

// checkoutEnv arma el caso de uso sobre el almacén en memoria, con una sesión
// de caja abierta (fondo inicial Kz 1000) lista para vender.
type checkoutEnv struct {
	store *memory.Store
	bus   EventBus.Bus
	uc    *sales.CheckoutUseCase
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()
	store := memory.NewStore()
	bus := EventBus.New()
	uc := sales.NewCheckoutUseCase(memory.NewTxRunner(store), memory.NewProductRepository(store), bus)

	err := memory.NewSessionRepository(store).Create(&entity.RegisterSession{
		ID:           testSessionID,
		RegisterName: "CAJA-01",
		OperatorID:   testOperatorID,
		OpenedAt:     time.Now(),
		InitialCash:  decimal.NewFromInt(1000),
		ExpectedCash: decimal.NewFromInt(1000),
		ExpectedCard: decimal.Zero,
		Status:       entity.SessionOpen,
	})
	require.NoError(t, err)
	return &checkoutEnv{store: store, bus: bus, uc: uc}
}

func (e *checkoutEnv) seedProduct(t *testing.T, id, price string, stock, minStock int) {
	t.Helper()
	require.NoError(t, memory.NewProductRepository(e.store).Create(&entity.Product{
		ID:            id,
		Barcode:       "789" + id,
		Name:          "Producto " + id,
		SalePrice:     decimal.RequireFromString(price),
		CostPrice:     decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		StockQuantity: stock,
		MinStock:      minStock,
	}))
}

func (e *checkoutEnv) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := memory.NewProductRepository(e.store).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func (e *checkoutEnv) session(t *testing.T) *entity.RegisterSession {
	t.Helper()
	s, err := memory.NewSessionRepository(e.store).GetByID(testSessionID)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

// Caso 1: Venta en efectivo — descuenta stock, persiste la venta y acumula el
// total en el efectivo esperado de la sesión.
func TestFinalize_VentaEfectivo_DescuentaYAcumulaEsperado(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProduct(t, "p1", "150.00", 10, 0)

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	sale, err := env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, entity.PaymentCash)
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.Total.Equal(decimal.RequireFromString("300.00")))
	require.Len(t, sale.Lines, 1)
	assert.True(t, sale.Lines[0].Subtotal.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, 8, env.stockOf(t, "p1"))

	session := env.session(t)
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromInt(1300)),
		"el efectivo esperado debe crecer por la venta: 1000 + 300")
	assert.True(t, session.ExpectedCard.IsZero())

	// La baja queda en el libro de movimientos como SALE negativo.
	movs, err := memory.NewStockMovementRepository(env.store).ListByProduct("p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSALE, movs[0].Type)
	assert.Equal(t, -2, movs[0].Quantity)
}

// Caso 2: Venta con tarjeta acumula en ExpectedCard, no en efectivo.
func TestFinalize_VentaTarjeta_AcumulaEnExpectedCard(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProduct(t, "p1", "250.00", 5, 0)

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, entity.PaymentCard)
	require.NoError(t, err)

	session := env.session(t)
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromInt(1000)),
		"el efectivo esperado no cambia con pago en tarjeta")
	assert.True(t, session.ExpectedCard.Equal(decimal.NewFromInt(250)))
}

// Caso 3: Si una línea quedó sin stock entre armar el carrito y confirmarlo,
// la transacción se revierte completa: sin descuentos parciales ni venta.
func TestFinalize_StockInsuficiente_RevierteSinEfectoParcial(t *testing.T) {
	env := newCheckoutEnv(t)
	// IDs ordenados para que "a1" se descuente primero y "b1" haga fallar la tx.
	env.seedProduct(t, "a1", "100.00", 10, 0)
	env.seedProduct(t, "b1", "200.00", 1, 0)

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{
		{ProductID: "a1", Quantity: 4},
		{ProductID: "b1", Quantity: 1},
	})
	require.NoError(t, err)

	// Otra venta agota b1 antes de confirmar.
	require.NoError(t, memory.NewProductRepository(env.store).UpdateStock("b1", 0, time.Now()))

	_, err = env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, env.stockOf(t, "a1"), "la línea ya descontada debe revertirse")
	assert.Equal(t, 0, env.stockOf(t, "b1"))

	session := env.session(t)
	assert.True(t, session.ExpectedCash.Equal(decimal.NewFromInt(1000)),
		"el esperado de la sesión no cambia en una venta fallida")

	persisted, err := memory.NewSaleRepository(env.store).ListBySession(testSessionID)
	require.NoError(t, err)
	assert.Empty(t, persisted, "no debe quedar venta persistida")

	movs, err := memory.NewStockMovementRepository(env.store).ListByProduct("a1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento de la línea revertida no debe quedar en el libro")
}

// Caso 4: Vender contra una sesión cerrada falla con ErrSessionNotOpen.
func TestFinalize_SesionCerrada_RetornaErrSessionNotOpen(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProduct(t, "p1", "100.00", 10, 0)

	sessionRepo := memory.NewSessionRepository(env.store)
	session := env.session(t)
	now := time.Now()
	session.Status = entity.SessionClosed
	session.ClosedAt = &now
	require.NoError(t, sessionRepo.Update(session))

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
	assert.Equal(t, 10, env.stockOf(t, "p1"))
}

// Caso 5: Carrito vacío o medio de pago desconocido no llegan a la transacción.
func TestFinalize_EntradasInvalidas(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProduct(t, "p1", "100.00", 10, 0)

	_, err := env.uc.Finalize(context.Background(), sales.NewCart(), testSessionID, testOperatorID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = env.uc.Finalize(context.Background(), nil, testSessionID, testOperatorID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)
	_, err = env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, "CHEQUE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 6: Una venta que deja el stock bajo el mínimo publica la alerta después
// del commit; la venta en sí no se bloquea.
func TestFinalize_PublicaAlertaStockMinimo(t *testing.T) {
	env := newCheckoutEnv(t)
	env.seedProduct(t, "p1", "100.00", 3, 3)

	var alerts []events.LowStockAlert
	require.NoError(t, env.bus.Subscribe(events.TopicLowStock, func(a events.LowStockAlert) {
		alerts = append(alerts, a)
	}))

	cart, err := env.uc.BuildCart([]dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = env.uc.Finalize(context.Background(), cart, testSessionID, testOperatorID, entity.PaymentCash)
	require.NoError(t, err)

	// Publish síncrono: al volver Finalize la alerta ya fue entregada.
	require.Len(t, alerts, 1)
	assert.Equal(t, "p1", alerts[0].ProductID)
	assert.Equal(t, 2, alerts[0].StockQuantity)
	assert.Equal(t, 3, alerts[0].MinStock)
}
