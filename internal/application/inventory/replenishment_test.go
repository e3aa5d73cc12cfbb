package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/inventory"
	"github.com/jhoicas/inventario-core/internal/domain/catalog"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

func TestGenerateReplenishmentList_PrioridadPorMargen(t *testing.T) {
	uc, _ := newUseCase(t)
	sup := mustSupplier(t, uc)
	loc, err := uc.CreateLocation("Bodega", "")
	require.NoError(t, err)

	bajoMargen := mustProduct(t, uc, sup, 9, 10, 4) // 10% margen, stock 0
	altoMargen := mustProduct(t, uc, sup, 5, 10, 4) // 50% margen, stock 1
	ok := mustProduct(t, uc, sup, 5, 10, 2)         // sobre el reorden
	require.NoError(t, uc.ReceiveStock(altoMargen, loc, 1))
	require.NoError(t, uc.ReceiveStock(ok, loc, 5))

	kit, err := uc.CreateProduct(entity.ProductTypeKit, catalog.ProductInput{
		Name:         "Combo",
		SalePrice:    dec(100),
		ReorderPoint: 10,
		Components:   []entity.KitComponent{{Product: ok, Quantity: 1}},
	})
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(uc).
		GenerateReplenishmentList([]*entity.Product{bajoMargen, altoMargen, ok, kit})
	require.NoError(t, err)
	require.Len(t, list, 2, "el producto sobre el reorden y el kit se omiten")

	first := list[0]
	assert.Same(t, altoMargen, first.Product)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, 6, first.IdealStock)
	assert.Equal(t, 5, first.SuggestedOrderQty)
	assert.Equal(t, "50", first.GrossMarginPct.String())
	assert.True(t, first.EstimatedOrderCost.Equal(dec(25)))

	assert.Same(t, bajoMargen, list[1].Product)
	assert.Equal(t, 6, list[1].SuggestedOrderQty)
}

func TestGenerateOrders_UnaOrdenPorProveedor(t *testing.T) {
	uc, _ := newUseCase(t)
	supA := mustSupplier(t, uc)
	supB, err := uc.CreateSupplier(catalog.SupplierInput{Name: "Marta", Company: "Importadora Norte"})
	require.NoError(t, err)

	p1 := mustProduct(t, uc, supA, 5, 10, 2)
	p2 := mustProduct(t, uc, supA, 6, 10, 2)
	p3 := mustProduct(t, uc, supB, 6, 10, 2)
	huerfano := mustProduct(t, uc, nil, 6, 10, 2)

	orders, err := inventory.NewReplenishmentUseCase(uc).GenerateOrders([]*entity.Product{p1, p2, p3, huerfano})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	bySupplier := map[*entity.Supplier]*entity.PurchaseOrder{}
	for _, o := range orders {
		assert.Equal(t, entity.PurchaseOrderStatusPending, o.Status)
		bySupplier[o.Supplier] = o
	}
	assert.Len(t, bySupplier[supA].Items, 2)
	assert.Len(t, bySupplier[supB].Items, 1)
	assert.Equal(t, 3, bySupplier[supB].Items[0].Quantity)
}

func TestGenerateReplenishmentList_KitCiclicoSeOmite(t *testing.T) {
	uc, _ := newUseCase(t)
	p := mustProduct(t, uc, nil, 1, 2, 1)
	kit := &entity.Product{ID: 99, Type: entity.ProductTypeKit}
	kit.Components = []entity.KitComponent{{Product: kit, Quantity: 1}}

	list, err := inventory.NewReplenishmentUseCase(uc).GenerateReplenishmentList([]*entity.Product{p, kit})
	require.NoError(t, err, "los kits no se evalúan")
	assert.Len(t, list, 1)
}

func TestGenerateReplenishmentList_LimiteDelPuntoDeReorden(t *testing.T) {
	uc, _ := newUseCase(t)
	loc, err := uc.CreateLocation("Bodega", "")
	require.NoError(t, err)

	enElLimite := mustProduct(t, uc, nil, 5, 10, 4)
	sobreElLimite := mustProduct(t, uc, nil, 5, 10, 4)
	require.NoError(t, uc.ReceiveStock(enElLimite, loc, 4))
	require.NoError(t, uc.ReceiveStock(sobreElLimite, loc, 5))

	list, err := inventory.NewReplenishmentUseCase(uc).
		GenerateReplenishmentList([]*entity.Product{enElLimite, sobreElLimite})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Same(t, enElLimite, list[0].Product)
	assert.Equal(t, 4, list[0].CurrentStock)
	assert.Equal(t, 2, list[0].SuggestedOrderQty)
}
