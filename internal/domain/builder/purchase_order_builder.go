package builder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// PurchaseOrderBuilder construye órdenes de compra para un proveedor.
type PurchaseOrderBuilder struct {
	seq      *identity.Sequencer
	supplier *entity.Supplier
	id       int64
	items    []entity.PurchaseOrderItem
	status   string
	date     time.Time
	err      error
}

// NewPurchaseOrderBuilder crea el builder; el proveedor es obligatorio.
func NewPurchaseOrderBuilder(seq *identity.Sequencer, supplier *entity.Supplier) (*PurchaseOrderBuilder, error) {
	if supplier == nil {
		return nil, &domain.ValidationError{Entity: "orden_compra", Field: "proveedor", Value: nil, Reason: "es obligatorio"}
	}
	return &PurchaseOrderBuilder{
		seq:      seq,
		supplier: supplier,
		status:   entity.PurchaseOrderStatusPending,
	}, nil
}

// WithID define el ID de la orden (debe ser > 0).
func (b *PurchaseOrderBuilder) WithID(id int64) *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	if id <= 0 {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "id", Value: id, Reason: "debe ser mayor que cero"}
		return b
	}
	b.id = id
	return b
}

// WithAutoID emite un ID único de la categoría purchase_order.
func (b *PurchaseOrderBuilder) WithAutoID() *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	id, err := b.seq.Next(identity.CategoryPurchaseOrder)
	if err != nil {
		b.err = err
		return b
	}
	b.id = id
	return b
}

// AddItem agrega un ítem al precio de compra del producto.
func (b *PurchaseOrderBuilder) AddItem(product *entity.Product, quantity int) *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	if product == nil {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "producto", Value: nil, Reason: "es obligatorio"}
		return b
	}
	return b.AddItemWithPrice(product, quantity, product.PurchasePrice)
}

// AddItemWithPrice agrega un ítem con precio unitario explícito (>= 0).
func (b *PurchaseOrderBuilder) AddItemWithPrice(product *entity.Product, quantity int, unitPrice decimal.Decimal) *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	if product == nil {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "producto", Value: nil, Reason: "es obligatorio"}
		return b
	}
	if quantity <= 0 {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "cantidad", Value: quantity, Reason: "debe ser mayor que cero"}
		return b
	}
	if unitPrice.IsNegative() {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "precio_unitario", Value: unitPrice, Reason: "no puede ser negativo"}
		return b
	}
	b.items = append(b.items, entity.PurchaseOrderItem{Product: product, Quantity: quantity, UnitPrice: unitPrice})
	return b
}

// WithStatus define el estado: pendiente, recibida o cancelada. Por defecto pendiente.
func (b *PurchaseOrderBuilder) WithStatus(status string) *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	if !entity.IsValidPurchaseOrderStatus(status) {
		b.err = &domain.ValidationError{Entity: "orden_compra", Field: "estado", Value: status,
			Reason: "debe ser pendiente, recibida o cancelada"}
		return b
	}
	b.status = status
	return b
}

// WithDate fija la fecha de creación; por defecto es el instante de Build.
func (b *PurchaseOrderBuilder) WithDate(date time.Time) *PurchaseOrderBuilder {
	if b.err != nil {
		return b
	}
	b.date = date
	return b
}

// ClearItems elimina todos los ítems acumulados. No limpia Err(): tras un error el builder
// queda inutilizable y hay que crear uno nuevo.
func (b *PurchaseOrderBuilder) ClearItems() *PurchaseOrderBuilder {
	b.items = nil
	return b
}

// Err primer error registrado por un método fluido.
func (b *PurchaseOrderBuilder) Err() error {
	return b.err
}

// Build construye la orden con una copia defensiva de los ítems.
func (b *PurchaseOrderBuilder) Build() (*entity.PurchaseOrder, error) {
	if b.err != nil {
		return nil, b.err
	}
	var missing []string
	if b.id == 0 {
		missing = append(missing, "id (use WithID o WithAutoID)")
	}
	if len(b.items) == 0 {
		missing = append(missing, "ítems (use AddItem)")
	}
	if len(missing) > 0 {
		return nil, &domain.IncompleteEntityError{Entity: "orden de compra", Missing: missing}
	}

	date := b.date
	if date.IsZero() {
		date = time.Now()
	}
	items := make([]entity.PurchaseOrderItem, len(b.items))
	copy(items, b.items)
	return &entity.PurchaseOrder{
		ID:        b.id,
		Supplier:  b.supplier,
		Items:     items,
		Status:    b.status,
		CreatedAt: date,
	}, nil
}
