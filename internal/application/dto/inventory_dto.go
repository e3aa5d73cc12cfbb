package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// SaleLine línea solicitada para una venta. UnitPrice nil = precio de venta del producto.
type SaleLine struct {
	Product   *entity.Product
	Quantity  int
	UnitPrice *decimal.Decimal
}

// PurchaseLine línea solicitada para una orden de compra. UnitPrice nil = precio de compra del producto.
type PurchaseLine struct {
	Product   *entity.Product
	Quantity  int
	UnitPrice *decimal.Decimal
}

// ReturnLine producto devuelto con motivo y condición.
type ReturnLine struct {
	Product   *entity.Product
	Quantity  int
	Reason    string
	Condition string
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un producto
// que se encuentra en o por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	Product            *entity.Product
	CurrentStock       int
	ReorderPoint       int
	IdealStock         int             // ReorderPoint * 1.5 (redondeado hacia arriba)
	SuggestedOrderQty  int             // IdealStock - CurrentStock
	UnitCost           decimal.Decimal // precio de compra actual
	EstimatedOrderCost decimal.Decimal // SuggestedOrderQty * UnitCost
	GrossMarginPct     decimal.Decimal // (venta - costo) / venta * 100
	Priority           int             // 1 = más urgente
}
