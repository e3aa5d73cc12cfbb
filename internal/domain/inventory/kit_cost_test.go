package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-core/internal/domain/inventory"
)

func TestKitCost_SumaPonderadaPorCantidad(t *testing.T) {
	cost := inventory.KitCost([]inventory.CostLine{
		{UnitCost: decimal.NewFromInt(5), Quantity: 2},
		{UnitCost: decimal.NewFromInt(7), Quantity: 1},
	})
	assert.True(t, cost.Equal(decimal.NewFromInt(17)), "5*2 + 7*1 = 17, obtenido %s", cost)
}

func TestKitCost_SinLineasEsCero(t *testing.T) {
	assert.True(t, inventory.KitCost(nil).IsZero())
}

func TestKitCost_Decimales(t *testing.T) {
	cost := inventory.KitCost([]inventory.CostLine{
		{UnitCost: decimal.RequireFromString("0.10"), Quantity: 3},
	})
	assert.Equal(t, "0.30", cost.StringFixed(2))
}

func TestBuildable(t *testing.T) {
	cases := []struct {
		name                string
		available, required int
		want                int
	}{
		{"exacto", 10, 2, 5},
		{"redondea hacia abajo", 7, 2, 3},
		{"insuficiente", 1, 2, 0},
		{"cantidad cero", 10, 0, 0},
		{"cantidad negativa", 10, -1, 0},
		{"sin stock", 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Buildable(tc.available, tc.required))
		})
	}
}
