package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

var nowFunc = time.Now

// ReplenishmentUseCase genera la lista de reposición y las órdenes de compra sugeridas.
// Los kits se omiten: su stock es derivado y se repone comprando sus componentes.
type ReplenishmentUseCase struct {
	catalog *CatalogUseCase
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(catalog *CatalogUseCase) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{catalog: catalog}
}

// GenerateReplenishmentList devuelve los productos en o bajo su punto de reorden con la cantidad
// sugerida de pedido y un ranking de prioridad basado en margen y déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(products []*entity.Product) ([]dto.ReplenishmentSuggestionDTO, error) {
	hundred := decimal.NewFromInt(100)
	factor := decimal.NewFromFloat(1.5)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if p == nil || p.IsKit() {
			continue
		}
		current, err := p.TotalStock()
		if err != nil {
			return nil, err
		}
		if current > p.ReorderPoint {
			continue
		}

		ideal := int(decimal.NewFromInt(int64(p.ReorderPoint)).Mul(factor).Ceil().IntPart())
		suggested := ideal - current
		if suggested <= 0 {
			continue
		}

		var marginPct decimal.Decimal
		if p.SalePrice.GreaterThan(decimal.Zero) {
			marginPct = p.SalePrice.Sub(p.PurchasePrice).Div(p.SalePrice).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			Product:            p,
			CurrentStock:       current,
			ReorderPoint:       p.ReorderPoint,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           p.PurchasePrice,
			EstimatedOrderCost: p.PurchasePrice.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:     marginPct,
		})
	}

	// Ordenar: primero mayor margen, luego mayor déficit bajo el reorden; ID como desempate estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		defA := a.ReorderPoint - a.CurrentStock
		defB := b.ReorderPoint - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.Product.ID < b.Product.ID
	})

	// Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	uc.catalog.metrics.SetReplenishmentPending(len(suggestions))

	return suggestions, nil
}

// GenerateOrders crea una orden de compra pendiente por proveedor con las cantidades sugeridas.
// Productos sin proveedor quedan fuera.
func (uc *ReplenishmentUseCase) GenerateOrders(products []*entity.Product) ([]*entity.PurchaseOrder, error) {
	suggestions, err := uc.GenerateReplenishmentList(products)
	if err != nil {
		return nil, err
	}

	var suppliers []*entity.Supplier
	lines := make(map[*entity.Supplier][]dto.PurchaseLine)
	for _, s := range suggestions {
		sup := s.Product.Supplier
		if sup == nil {
			continue
		}
		if _, ok := lines[sup]; !ok {
			suppliers = append(suppliers, sup)
		}
		lines[sup] = append(lines[sup], dto.PurchaseLine{Product: s.Product, Quantity: s.SuggestedOrderQty})
	}

	orders := make([]*entity.PurchaseOrder, 0, len(suppliers))
	for _, sup := range suppliers {
		order, err := uc.catalog.RegisterPurchaseOrder(sup, lines[sup], entity.PurchaseOrderStatusPending)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
