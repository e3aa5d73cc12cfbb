package inventory_test

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/inventory"
	"github.com/jhoicas/inventario-core/internal/application/inventory/metrics"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/catalog"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
	"github.com/jhoicas/inventario-core/internal/domain/prototype"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newUseCase(t *testing.T) (*inventory.CatalogUseCase, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})
	return inventory.NewCatalogUseCase(identity.NewSequencer(), log), &buf
}

func mustSupplier(t *testing.T, uc *inventory.CatalogUseCase) *entity.Supplier {
	t.Helper()
	s, err := uc.CreateSupplier(catalog.SupplierInput{Name: "Luis", Company: "Ferretería Sur"})
	require.NoError(t, err)
	return s
}

func mustProduct(t *testing.T, uc *inventory.CatalogUseCase, sup *entity.Supplier, purchase, sale int64, reorder int) *entity.Product {
	t.Helper()
	p, err := uc.CreateProduct(entity.ProductTypeIndividual, catalog.ProductInput{
		Name:          "Tornillo",
		Supplier:      sup,
		PurchasePrice: dec(purchase),
		SalePrice:     dec(sale),
		ReorderPoint:  reorder,
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// CatalogUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogUseCase_FlujoCompleto(t *testing.T) {
	uc, buf := newUseCase(t)
	sup := mustSupplier(t, uc)
	loc, err := uc.CreateLocation("Bodega", "")
	require.NoError(t, err)

	a := mustProduct(t, uc, sup, 5, 9, 0)
	b := mustProduct(t, uc, sup, 7, 9, 0)
	kit, err := uc.CreateProduct(entity.ProductTypeKit, catalog.ProductInput{
		Name:      "Combo",
		SalePrice: dec(20),
		Components: []entity.KitComponent{
			{Product: a, Quantity: 2},
			{Product: b, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.ReceiveStock(a, loc, 10))
	require.NoError(t, uc.ReceiveStock(b, loc, 7))
	stock, err := kit.TotalStock()
	require.NoError(t, err)
	assert.Equal(t, 5, stock)
	assert.Len(t, uc.Movements(), 2)

	sale, err := uc.RegisterSale("Ana", []dto.SaleLine{{Product: kit, Quantity: 5}})
	require.NoError(t, err)
	assert.True(t, sale.Total().Equal(dec(100)))

	ret, err := uc.RegisterReturn(sale, []dto.ReturnLine{{Product: kit, Quantity: 1, Reason: "incompleto", Condition: "abierto"}}, "")
	require.NoError(t, err)
	tx, err := uc.SettleReturn(ret, entity.TransactionKindRefund)
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(dec(20)))

	order, err := uc.RegisterPurchaseOrder(sup, []dto.PurchaseLine{{Product: a, Quantity: 3}}, "")
	require.NoError(t, err)
	again, err := uc.RepeatPurchaseOrder(order)
	require.NoError(t, err)
	assert.NotEqual(t, order.ID, again.ID)

	variant, err := uc.CloneProduct(a, "Tornillo 2\"", "999", prototype.ProductOverrides{})
	require.NoError(t, err)
	assert.Empty(t, variant.StockByLocation)

	logs := buf.String()
	assert.Contains(t, logs, `"component":"catalogo"`)
	assert.Contains(t, logs, "producto creado")
	assert.Contains(t, logs, "venta registrada")
	assert.Contains(t, logs, "transacción registrada")
}

func TestCatalogUseCase_VentaRechazadaNoConsumeID(t *testing.T) {
	uc, buf := newUseCase(t)
	p := mustProduct(t, uc, nil, 1, 2, 0)

	_, err := uc.RegisterSale("Ana", []dto.SaleLine{{Product: p, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	price := dec(3)
	_, err = uc.RegisterSale("", []dto.SaleLine{{Product: p, Quantity: 1, UnitPrice: &price}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, _ := uc.Sequencer().Current(identity.CategorySale)
	assert.Zero(t, c)
	assert.Contains(t, buf.String(), "venta rechazada")
}

func TestCatalogUseCase_TipoDeProductoDesconocido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.CreateProduct("servicio", catalog.ProductInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogUseCase_SeedIDs(t *testing.T) {
	uc, _ := newUseCase(t)

	require.NoError(t, uc.SeedIDs(map[string]int64{identity.CategoryProduct: 100}))
	p := mustProduct(t, uc, nil, 1, 2, 0)
	assert.Equal(t, int64(101), p.ID)

	assert.ErrorIs(t, uc.SeedIDs(map[string]int64{"cliente": 1}), domain.ErrUnknownCategory)
}

func TestCatalogUseCase_ReceiveStockValida(t *testing.T) {
	uc, _ := newUseCase(t)
	loc, err := uc.CreateLocation("Tienda", "")
	require.NoError(t, err)
	p := mustProduct(t, uc, nil, 1, 2, 0)

	assert.ErrorIs(t, uc.ReceiveStock(p, loc, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.ReceiveStock(nil, loc, 1), domain.ErrInvalidInput)
	assert.Empty(t, uc.Movements())
}

func TestNewCatalogUseCase_LoggerNil(t *testing.T) {
	uc := inventory.NewCatalogUseCase(identity.NewSequencer(), nil)
	_, err := uc.CreateLocation("Bodega", "")
	assert.NoError(t, err)
}

func TestCatalogUseCase_Metricas(t *testing.T) {
	uc, _ := newUseCase(t)
	m := metrics.New(prometheus.NewRegistry())
	uc.WithMetrics(m)

	p := mustProduct(t, uc, nil, 1, 2, 3)
	_, err := uc.CreateProduct(entity.ProductTypeIndividual, catalog.ProductInput{PurchasePrice: dec(5), SalePrice: dec(1)})
	require.Error(t, err)
	_, err = uc.RegisterPurchaseOrder(nil, nil, "")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesCreated.WithLabelValues("producto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesRejected.WithLabelValues("producto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntitiesRejected.WithLabelValues("orden_compra")))

	_, err = inventory.NewReplenishmentUseCase(uc).GenerateReplenishmentList([]*entity.Product{p})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReplenishmentPending))
}
