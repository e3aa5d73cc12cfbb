// Package prototype clona productos y órdenes de compra como entidades nuevas e independientes.
//
// Los contenedores propios (mapa de stock, componentes, ítems) se copian; las entidades
// referenciadas (proveedor, producto componente, producto del ítem) se comparten porque
// apuntan a entradas existentes del catálogo.
package prototype

import (
	"time"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// ProductCloner crea variaciones de productos existentes.
type ProductCloner struct {
	seq *identity.Sequencer
}

// NewProductCloner construye el clonador de productos.
func NewProductCloner(seq *identity.Sequencer) *ProductCloner {
	return &ProductCloner{seq: seq}
}

// Clone copia src con ID nuevo y stock vacío, aplica ov y, si el resultado es kit,
// recalcula el precio de compra. El ID se emite solo si el clon resultante es válido.
func (c *ProductCloner) Clone(src *entity.Product, ov ProductOverrides) (*entity.Product, error) {
	if src == nil {
		return nil, &domain.ValidationError{Entity: "producto", Field: "origen", Value: nil, Reason: "es obligatorio"}
	}
	clone := *src
	clone.StockByLocation = make(map[string]int)
	clone.Components = copyComponents(src.Components)

	applyProductOverrides(&clone, ov)
	if !clone.IsKit() && ov.Components != nil {
		return nil, &domain.ValidationError{Entity: "producto", Field: "componentes", Value: len(ov.Components),
			Reason: "solo aplica a kits"}
	}
	if clone.IsKit() {
		clone.RecalcPurchasePrice()
	} else {
		clone.Components = nil
	}
	if err := validateClone(&clone); err != nil {
		return nil, err
	}

	id, err := c.seq.Next(identity.CategoryProduct)
	if err != nil {
		return nil, err
	}
	clone.ID = id
	return &clone, nil
}

// CloneAsVariant crea una variación (talla, color) con nombre y código de barras propios.
// Los valores de ov tienen prioridad sobre name y barcode.
func (c *ProductCloner) CloneAsVariant(src *entity.Product, name, barcode string, ov ProductOverrides) (*entity.Product, error) {
	if ov.Name == nil {
		ov.Name = &name
	}
	if ov.Barcode == nil {
		ov.Barcode = &barcode
	}
	return c.Clone(src, ov)
}

func applyProductOverrides(p *entity.Product, ov ProductOverrides) {
	if ov.Name != nil {
		p.Name = *ov.Name
	}
	if ov.Description != nil {
		p.Description = *ov.Description
	}
	if ov.Category != nil {
		p.Category = *ov.Category
	}
	if ov.Supplier != nil {
		p.Supplier = ov.Supplier
	}
	if ov.Barcode != nil {
		p.Barcode = *ov.Barcode
	}
	if ov.PurchasePrice != nil {
		p.PurchasePrice = *ov.PurchasePrice
	}
	if ov.SalePrice != nil {
		p.SalePrice = *ov.SalePrice
	}
	if ov.ReorderPoint != nil {
		p.ReorderPoint = *ov.ReorderPoint
	}
	if ov.Type != nil {
		p.Type = *ov.Type
	}
	if ov.Components != nil {
		p.Components = copyComponents(ov.Components)
	}
}

func validateClone(p *entity.Product) error {
	if p.Type != entity.ProductTypeIndividual && p.Type != entity.ProductTypeKit {
		return &domain.ValidationError{Entity: "producto", Field: "tipo", Value: p.Type, Reason: "debe ser individual o kit"}
	}
	if p.IsKit() {
		if len(p.Components) == 0 {
			return &domain.ValidationError{Entity: "kit", Field: "componentes", Value: 0,
				Reason: "el kit debe tener al menos un componente"}
		}
		for _, comp := range p.Components {
			if comp.Product == nil || comp.Quantity < 1 {
				return &domain.ValidationError{Entity: "kit", Field: "componentes", Value: comp.Quantity,
					Reason: "componente sin producto o con cantidad menor a 1"}
			}
		}
	}
	if p.PurchasePrice.IsNegative() {
		return &domain.ValidationError{Entity: "producto", Field: "precio_compra", Value: p.PurchasePrice, Reason: "no puede ser negativo"}
	}
	if p.SalePrice.IsNegative() {
		return &domain.ValidationError{Entity: "producto", Field: "precio_venta", Value: p.SalePrice, Reason: "no puede ser negativo"}
	}
	if p.ReorderPoint < 0 {
		return &domain.ValidationError{Entity: "producto", Field: "punto_reorden", Value: p.ReorderPoint, Reason: "no puede ser negativo"}
	}
	if p.SalePrice.LessThan(p.PurchasePrice) {
		return domain.NewMarginError(string(p.Type), p.SalePrice, p.PurchasePrice)
	}
	return nil
}

func copyComponents(in []entity.KitComponent) []entity.KitComponent {
	if in == nil {
		return nil
	}
	out := make([]entity.KitComponent, len(in))
	copy(out, in)
	return out
}

// PurchaseOrderCloner crea órdenes nuevas a partir de órdenes anteriores (órdenes recurrentes).
type PurchaseOrderCloner struct {
	seq *identity.Sequencer
	now func() time.Time
}

// NewPurchaseOrderCloner construye el clonador de órdenes de compra.
func NewPurchaseOrderCloner(seq *identity.Sequencer) *PurchaseOrderCloner {
	return &PurchaseOrderCloner{seq: seq, now: time.Now}
}

// WithClock reemplaza el reloj usado para la fecha de creación del clon.
func (c *PurchaseOrderCloner) WithClock(now func() time.Time) *PurchaseOrderCloner {
	c.now = now
	return c
}

// Clone copia src con ID nuevo y fecha de creación actual, y aplica ov.
func (c *PurchaseOrderCloner) Clone(src *entity.PurchaseOrder, ov PurchaseOrderOverrides) (*entity.PurchaseOrder, error) {
	if src == nil {
		return nil, &domain.ValidationError{Entity: "orden_compra", Field: "origen", Value: nil, Reason: "es obligatoria"}
	}
	clone := *src
	clone.Items = copyItems(src.Items)
	clone.CreatedAt = c.now()

	if ov.Supplier != nil {
		clone.Supplier = ov.Supplier
	}
	if ov.Status != nil {
		if !entity.IsValidPurchaseOrderStatus(*ov.Status) {
			return nil, &domain.ValidationError{Entity: "orden_compra", Field: "estado", Value: *ov.Status,
				Reason: "debe ser pendiente, recibida o cancelada"}
		}
		clone.Status = *ov.Status
	}
	if ov.Items != nil {
		for _, it := range ov.Items {
			if it.Product == nil || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
				return nil, &domain.ValidationError{Entity: "orden_compra", Field: "items", Value: it.Quantity,
					Reason: "ítem sin producto, con cantidad <= 0 o precio negativo"}
			}
		}
		clone.Items = copyItems(ov.Items)
	}
	if ov.CreatedAt != nil {
		clone.CreatedAt = *ov.CreatedAt
	}

	id, err := c.seq.Next(identity.CategoryPurchaseOrder)
	if err != nil {
		return nil, err
	}
	clone.ID = id
	return &clone, nil
}

// CloneAsRecurring crea una orden basada en una anterior, siempre pendiente y con fecha actual.
func (c *PurchaseOrderCloner) CloneAsRecurring(src *entity.PurchaseOrder) (*entity.PurchaseOrder, error) {
	status := entity.PurchaseOrderStatusPending
	return c.Clone(src, PurchaseOrderOverrides{Status: &status})
}

func copyItems(in []entity.PurchaseOrderItem) []entity.PurchaseOrderItem {
	if in == nil {
		return nil
	}
	out := make([]entity.PurchaseOrderItem, len(in))
	copy(out, in)
	return out
}
