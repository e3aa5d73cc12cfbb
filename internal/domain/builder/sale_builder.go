// Package builder contiene los acumuladores fluidos que construyen ventas, órdenes de compra
// y devoluciones validadas.
//
// Los builders son de un solo uso y de un solo escritor: no son seguros para uso concurrente
// sobre la misma instancia. El primer error de un método fluido queda registrado (Err) y
// las llamadas siguientes no tienen efecto; Build lo devuelve.
package builder

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// SaleBuilder construye ventas paso a paso.
type SaleBuilder struct {
	seq      *identity.Sequencer
	id       int64
	customer string
	items    []entity.SaleItem
	date     time.Time
	err      error
}

// NewSaleBuilder crea un builder de ventas que emite IDs con seq.
func NewSaleBuilder(seq *identity.Sequencer) *SaleBuilder {
	return &SaleBuilder{seq: seq}
}

// WithID define el ID de la venta (debe ser > 0).
func (b *SaleBuilder) WithID(id int64) *SaleBuilder {
	if b.err != nil {
		return b
	}
	if id <= 0 {
		b.err = &domain.ValidationError{Entity: "venta", Field: "id", Value: id, Reason: "debe ser mayor que cero"}
		return b
	}
	b.id = id
	return b
}

// WithAutoID emite un ID único de la categoría sale.
func (b *SaleBuilder) WithAutoID() *SaleBuilder {
	if b.err != nil {
		return b
	}
	id, err := b.seq.Next(identity.CategorySale)
	if err != nil {
		b.err = err
		return b
	}
	b.id = id
	return b
}

// WithCustomer define el cliente (no vacío).
func (b *SaleBuilder) WithCustomer(customer string) *SaleBuilder {
	if b.err != nil {
		return b
	}
	customer = strings.TrimSpace(customer)
	if customer == "" {
		b.err = &domain.ValidationError{Entity: "venta", Field: "cliente", Value: customer, Reason: "no puede ser vacío"}
		return b
	}
	b.customer = customer
	return b
}

// WithDate fija la fecha de la venta; por defecto es el instante de Build.
func (b *SaleBuilder) WithDate(date time.Time) *SaleBuilder {
	if b.err != nil {
		return b
	}
	b.date = date
	return b
}

// AddItem agrega un ítem al precio de venta del producto.
func (b *SaleBuilder) AddItem(product *entity.Product, quantity int) *SaleBuilder {
	if b.err != nil {
		return b
	}
	if product == nil {
		b.err = &domain.ValidationError{Entity: "venta", Field: "producto", Value: nil, Reason: "es obligatorio"}
		return b
	}
	return b.AddItemWithPrice(product, quantity, product.SalePrice)
}

// AddItemWithPrice agrega un ítem con precio unitario explícito.
// Verifica el stock disponible en este instante; no reserva ni descuenta stock.
func (b *SaleBuilder) AddItemWithPrice(product *entity.Product, quantity int, unitPrice decimal.Decimal) *SaleBuilder {
	if b.err != nil {
		return b
	}
	if product == nil {
		b.err = &domain.ValidationError{Entity: "venta", Field: "producto", Value: nil, Reason: "es obligatorio"}
		return b
	}
	if quantity <= 0 {
		b.err = &domain.ValidationError{Entity: "venta", Field: "cantidad", Value: quantity, Reason: "debe ser mayor que cero"}
		return b
	}
	available, err := product.TotalStock()
	if err != nil {
		b.err = err
		return b
	}
	if available < quantity {
		b.err = &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   available,
			Requested:   quantity,
		}
		return b
	}
	if !unitPrice.IsPositive() {
		b.err = &domain.ValidationError{Entity: "venta", Field: "precio_unitario", Value: unitPrice, Reason: "debe ser mayor que cero"}
		return b
	}
	b.items = append(b.items, entity.SaleItem{Product: product, Quantity: quantity, UnitPrice: unitPrice})
	return b
}

// ClearItems elimina todos los ítems acumulados. No limpia Err(): tras un error el builder
// queda inutilizable y hay que crear uno nuevo.
func (b *SaleBuilder) ClearItems() *SaleBuilder {
	b.items = nil
	return b
}

// Err primer error registrado por un método fluido.
func (b *SaleBuilder) Err() error {
	return b.err
}

// Build construye la venta. Los ítems se copian: mutar el builder después no afecta la venta.
func (b *SaleBuilder) Build() (*entity.Sale, error) {
	if b.err != nil {
		return nil, b.err
	}
	var missing []string
	if b.id == 0 {
		missing = append(missing, "id (use WithID o WithAutoID)")
	}
	if b.customer == "" {
		missing = append(missing, "cliente (use WithCustomer)")
	}
	if len(b.items) == 0 {
		missing = append(missing, "ítems (use AddItem)")
	}
	if len(missing) > 0 {
		return nil, &domain.IncompleteEntityError{Entity: "venta", Missing: missing}
	}

	date := b.date
	if date.IsZero() {
		date = time.Now()
	}
	items := make([]entity.SaleItem, len(b.items))
	copy(items, b.items)
	return &entity.Sale{
		ID:       b.id,
		Customer: b.customer,
		Items:    items,
		Date:     date,
	}, nil
}
