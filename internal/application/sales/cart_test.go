package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

func productoDePrueba(id string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Barcode:       "789" + id,
		Name:          "Producto " + id,
		SalePrice:     decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

// Caso 1: Agregar el mismo producto dos veces acumula cantidad en una sola
// línea y conserva el precio congelado de la primera vez.
func TestCart_AddLine_AcumulaYCongelaPrecio(t *testing.T) {
	cart := sales.NewCart()
	p := productoDePrueba("p1", "150.00", 10)

	require.NoError(t, cart.AddLine(p, 2))

	// El precio sube a mitad de venta: la línea ya agregada no cambia.
	p.SalePrice = decimal.RequireFromString("999.00")
	require.NoError(t, cart.AddLine(p, 1))

	lines := cart.Lines()
	require.Len(t, lines, 1, "el mismo producto debe acumular en una sola línea")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("150.00")),
		"el precio congelado al agregar debe conservarse")
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("450.00")))
}

// Caso 2: El acumulado solicitado no puede superar el stock disponible; el
// intento fallido deja el carrito sin cambios.
func TestCart_AddLine_RechazaAcumuladoSobreStock(t *testing.T) {
	cart := sales.NewCart()
	p := productoDePrueba("p1", "80.00", 5)

	require.NoError(t, cart.AddLine(p, 3))
	err := cart.AddLine(p, 3) // 3+3 > 5
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity, "el carrito no debe cambiar tras el rechazo")
}

func TestCart_AddLine_CantidadInvalida(t *testing.T) {
	cart := sales.NewCart()
	p := productoDePrueba("p1", "80.00", 5)

	assert.ErrorIs(t, cart.AddLine(p, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, cart.AddLine(nil, 1), domain.ErrNotFound)
	assert.True(t, cart.Empty())
}

func TestCart_SetLineQuantity(t *testing.T) {
	cart := sales.NewCart()
	p := productoDePrueba("p1", "100.00", 10)
	require.NoError(t, cart.AddLine(p, 2))

	// Subir la cantidad dentro del stock disponible.
	require.NoError(t, cart.SetLineQuantity("p1", 5, 10))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	// Por encima del disponible falla sin tocar la línea.
	assert.ErrorIs(t, cart.SetLineQuantity("p1", 11, 10), domain.ErrInsufficientStock)
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	// Cantidad 0 elimina la línea.
	require.NoError(t, cart.SetLineQuantity("p1", 0, 10))
	assert.True(t, cart.Empty())

	// Línea inexistente.
	assert.ErrorIs(t, cart.SetLineQuantity("nope", 1, 10), domain.ErrNotFound)
}

func TestCart_RemoveLineYTotal(t *testing.T) {
	cart := sales.NewCart()
	require.NoError(t, cart.AddLine(productoDePrueba("p1", "150.00", 10), 2)) // 300
	require.NoError(t, cart.AddLine(productoDePrueba("p2", "75.50", 10), 4))  // 302

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("602.00")))

	cart.RemoveLine("p1")
	require.Len(t, cart.Lines(), 1)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("302.00")))

	// Eliminar un producto que no está no tiene efecto.
	cart.RemoveLine("p1")
	assert.Len(t, cart.Lines(), 1)
}
