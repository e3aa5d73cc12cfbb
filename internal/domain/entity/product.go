package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/inventory"
)

// ProductType variante del producto.
type ProductType string

const (
	ProductTypeIndividual ProductType = "individual" // stock propio por ubicación
	ProductTypeKit        ProductType = "kit"        // stock derivado de sus componentes
)

// KitComponent referencia (no propietaria) a otro producto y la cantidad requerida para armar UN kit.
type KitComponent struct {
	Product  *Product
	Quantity int
}

// Product representa un producto del inventario, individual o kit.
// Es un registro pasivo: las invariantes de precio y margen las validan las fábricas en internal/domain/catalog.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Category      string
	Supplier      *Supplier
	Barcode       string
	PurchasePrice decimal.Decimal // en kits es derivado; ver RecalcPurchasePrice
	SalePrice     decimal.Decimal
	ReorderPoint  int // stock mínimo antes de reponer
	Type          ProductType

	// StockByLocation cantidad por nombre de ubicación (clave ausente = 0). Vacío en kits.
	StockByLocation map[string]int
	// Components solo para kits.
	Components []KitComponent
}

// IsKit indica si el producto es un kit.
func (p *Product) IsKit() bool {
	return p.Type == ProductTypeKit
}

// TotalStock calcula el stock total. En individuales es la suma por ubicación; en kits es el
// número de kits completos armables con el stock actual de los componentes (recursivo).
// Un kit sin componentes, o con una cantidad requerida <= 0, devuelve 0.
func (p *Product) TotalStock() (int, error) {
	return p.totalStock(make(map[*Product]bool), nil)
}

func (p *Product) totalStock(onPath map[*Product]bool, path []int64) (int, error) {
	path = append(path[:len(path):len(path)], p.ID)
	if onPath[p] {
		return 0, &domain.CyclicCompositionError{Path: path}
	}
	if !p.IsKit() {
		total := 0
		for _, qty := range p.StockByLocation {
			total += qty
		}
		return total, nil
	}
	if len(p.Components) == 0 {
		return 0, nil
	}

	onPath[p] = true
	defer delete(onPath, p)

	buildable := -1
	for _, c := range p.Components {
		n := 0
		if c.Product != nil {
			stock, err := c.Product.totalStock(onPath, path)
			if err != nil {
				return 0, err
			}
			n = inventory.Buildable(stock, c.Quantity)
		}
		if buildable < 0 || n < buildable {
			buildable = n
		}
	}
	return buildable, nil
}

// RecalcPurchasePrice re-deriva el costo de un kit desde los precios de compra actuales de sus
// componentes. No se propaga solo: debe invocarse tras cambiar precios, enlaces o cantidades.
// No-op para productos individuales.
func (p *Product) RecalcPurchasePrice() {
	if !p.IsKit() {
		return
	}
	lines := make([]inventory.CostLine, 0, len(p.Components))
	for _, c := range p.Components {
		if c.Product == nil {
			continue
		}
		lines = append(lines, inventory.CostLine{UnitCost: c.Product.PurchasePrice, Quantity: c.Quantity})
	}
	p.PurchasePrice = inventory.KitCost(lines)
}

// SetStock fija la cantidad en una ubicación. Solo aplica a productos individuales.
func (p *Product) SetStock(location string, qty int) error {
	if p.IsKit() {
		return &domain.ValidationError{Entity: "producto", Field: "stock", Value: location,
			Reason: "un kit no tiene stock propio"}
	}
	if location == "" {
		return &domain.ValidationError{Entity: "producto", Field: "ubicacion", Value: location,
			Reason: "no puede ser vacía"}
	}
	if qty < 0 {
		return &domain.ValidationError{Entity: "producto", Field: "stock", Value: qty,
			Reason: "no puede ser negativo"}
	}
	if p.StockByLocation == nil {
		p.StockByLocation = make(map[string]int)
	}
	p.StockByLocation[location] = qty
	return nil
}

// StockAt cantidad en una ubicación (0 si no existe).
func (p *Product) StockAt(location string) int {
	return p.StockByLocation[location]
}

// NeedsReorder indica si el stock total está en o por debajo del punto de reorden.
func (p *Product) NeedsReorder() (bool, error) {
	stock, err := p.TotalStock()
	if err != nil {
		return false, err
	}
	return stock <= p.ReorderPoint, nil
}

func (p *Product) String() string {
	stock, err := p.TotalStock()
	if err != nil {
		return fmt.Sprintf("%d - %s (composición cíclica)", p.ID, p.Name)
	}
	if p.IsKit() {
		return fmt.Sprintf("%d - %s (Kit) (Stock armable: %d)", p.ID, p.Name, stock)
	}
	return fmt.Sprintf("%d - %s (Stock total: %d)", p.ID, p.Name, stock)
}
