package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/catalog"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func input(purchase, sale int64) catalog.ProductInput {
	return catalog.ProductInput{
		Name:          "Martillo",
		Description:   "Martillo de uña 16oz",
		Category:      "herramientas",
		Barcode:       "7701234567890",
		PurchasePrice: dec(purchase),
		SalePrice:     dec(sale),
		ReorderPoint:  5,
	}
}

func currentProductID(t *testing.T, seq *identity.Sequencer) int64 {
	t.Helper()
	c, err := seq.Current(identity.CategoryProduct)
	require.NoError(t, err)
	return c
}

// Ambas variantes satisfacen la misma capacidad.
var (
	_ catalog.ProductFactory = (*catalog.IndividualFactory)(nil)
	_ catalog.ProductFactory = (*catalog.KitFactory)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Fábrica de individuales
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: compra 10, venta 15 → ok; venta 8 → error de margen.
func TestIndividualFactory_EscenarioA(t *testing.T) {
	seq := identity.NewSequencer()
	f := catalog.NewIndividualFactory(seq)

	p, err := f.Create(input(10, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, entity.ProductTypeIndividual, p.Type)
	assert.True(t, p.PurchasePrice.Equal(dec(10)))
	assert.NotNil(t, p.StockByLocation)

	_, err = f.Create(input(10, 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientMargin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var me *domain.MarginError
	require.True(t, errors.As(err, &me))
	assert.True(t, me.Shortfall.Equal(dec(2)))
	assert.Equal(t, int64(1), currentProductID(t, seq), "la validación fallida no consume ID")
}

func TestIndividualFactory_ValidacionesComunes(t *testing.T) {
	cases := []struct {
		name  string
		in    catalog.ProductInput
		field string
	}{
		{"precio de compra negativo", input(-1, 5), "precio_compra"},
		{"precio de venta negativo", input(0, -1), "precio_venta"},
		{"punto de reorden negativo", func() catalog.ProductInput { in := input(1, 2); in.ReorderPoint = -1; return in }(), "punto_reorden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq := identity.NewSequencer()
			_, err := catalog.NewIndividualFactory(seq).Create(tc.in)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "se esperaba ValidationError, obtenido %v", err)
			assert.Equal(t, tc.field, ve.Field)
			assert.Zero(t, currentProductID(t, seq))
		})
	}
}

func TestIndividualFactory_PrecioIgualAlCostoEsValido(t *testing.T) {
	_, err := catalog.NewIndividualFactory(identity.NewSequencer()).Create(input(10, 10))
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fábrica de kits
// ──────────────────────────────────────────────────────────────────────────────

func components(t *testing.T, seq *identity.Sequencer) []entity.KitComponent {
	t.Helper()
	f := catalog.NewIndividualFactory(seq)
	a, err := f.Create(input(5, 9))
	require.NoError(t, err)
	b, err := f.Create(input(7, 9))
	require.NoError(t, err)
	return []entity.KitComponent{{Product: a, Quantity: 2}, {Product: b, Quantity: 1}}
}

// Escenario B: componentes 5x2 + 7x1 = 17; venta 15 → faltante 2.
func TestKitFactory_EscenarioB(t *testing.T) {
	seq := identity.NewSequencer()
	comps := components(t, seq)
	kits := catalog.NewKitFactory(seq)

	in := input(999, 15) // el precio de compra de entrada se ignora
	in.Components = comps
	_, err := kits.Create(in)
	require.Error(t, err)

	var me *domain.MarginError
	require.True(t, errors.As(err, &me))
	assert.True(t, me.Cost.Equal(dec(17)))
	assert.True(t, me.Shortfall.Equal(dec(2)), "faltante esperado 2, obtenido %s", me.Shortfall)
	assert.Contains(t, err.Error(), "-2.00")
	assert.Equal(t, int64(2), currentProductID(t, seq), "solo los componentes consumieron ID")

	in.SalePrice = dec(20)
	k, err := kits.Create(in)
	require.NoError(t, err)
	assert.Equal(t, int64(3), k.ID)
	assert.True(t, k.PurchasePrice.Equal(dec(17)))
	assert.Equal(t, entity.ProductTypeKit, k.Type)
}

func TestKitFactory_CopiaListaDeComponentes(t *testing.T) {
	seq := identity.NewSequencer()
	comps := components(t, seq)
	in := input(0, 30)
	in.Components = comps

	k, err := catalog.NewKitFactory(seq).Create(in)
	require.NoError(t, err)

	comps[0].Quantity = 50
	assert.Equal(t, 2, k.Components[0].Quantity)
	assert.Same(t, comps[0].Product, k.Components[0].Product, "el producto componente se comparte")
}

func TestKitFactory_Validaciones(t *testing.T) {
	seq := identity.NewSequencer()
	comps := components(t, seq)
	kits := catalog.NewKitFactory(seq)

	sinComponentes := input(0, 10)
	_, err := kits.Create(sinComponentes)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cantidadCero := input(0, 10)
	cantidadCero.Components = []entity.KitComponent{{Product: comps[0].Product, Quantity: 0}}
	_, err = kits.Create(cantidadCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sinProducto := input(0, 10)
	sinProducto.Components = []entity.KitComponent{{Quantity: 1}}
	_, err = kits.Create(sinProducto)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ventaNegativa := input(0, -1)
	ventaNegativa.Components = comps
	_, err = kits.Create(ventaNegativa)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(2), currentProductID(t, seq))
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierFactory(t *testing.T) {
	seq := identity.NewSequencer()
	f := catalog.NewSupplierFactory(seq)

	s, err := f.Create(catalog.SupplierInput{Name: " Luis ", Company: "Ferretería Sur", Email: "luis@sur.co"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, "Luis", s.Name)

	_, err = f.Create(catalog.SupplierInput{Name: "  ", Company: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.Create(catalog.SupplierInput{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, _ := seq.Current(identity.CategorySupplier)
	assert.Equal(t, int64(1), c)
}

func TestLocationFactory(t *testing.T) {
	seq := identity.NewSequencer()
	f := catalog.NewLocationFactory(seq)

	l, err := f.Create("Bodega Norte", "Calle 10 #5-20")
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)

	_, err = f.Create("", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
