package builder

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// ReturnBuilder construye el proceso de devolución de una venta existente.
type ReturnBuilder struct {
	seq      *identity.Sequencer
	sale     *entity.Sale
	id       int64
	customer string
	items    []entity.ReturnItem
	status   string
	notes    string
	exchange *entity.Sale
	date     time.Time
	err      error
}

// NewReturnBuilder crea el builder para la venta original; el cliente por defecto es el de la venta.
func NewReturnBuilder(seq *identity.Sequencer, sale *entity.Sale) (*ReturnBuilder, error) {
	if sale == nil {
		return nil, &domain.ValidationError{Entity: "devolucion", Field: "venta_original", Value: nil, Reason: "es obligatoria"}
	}
	return &ReturnBuilder{
		seq:      seq,
		sale:     sale,
		customer: sale.Customer,
		status:   entity.ReturnStatusRequested,
	}, nil
}

// WithAutoID emite un ID único de la categoría return.
func (b *ReturnBuilder) WithAutoID() *ReturnBuilder {
	if b.err != nil {
		return b
	}
	id, err := b.seq.Next(identity.CategoryReturn)
	if err != nil {
		b.err = err
		return b
	}
	b.id = id
	return b
}

// WithCustomer reemplaza el cliente tomado de la venta.
func (b *ReturnBuilder) WithCustomer(customer string) *ReturnBuilder {
	if b.err != nil {
		return b
	}
	customer = strings.TrimSpace(customer)
	if customer == "" {
		b.err = &domain.ValidationError{Entity: "devolucion", Field: "cliente", Value: customer, Reason: "no puede ser vacío"}
		return b
	}
	b.customer = customer
	return b
}

// AddItem agrega un producto devuelto. El producto debe figurar en la venta original y
// el total devuelto no puede superar lo vendido.
func (b *ReturnBuilder) AddItem(product *entity.Product, quantity int, reason, condition string) *ReturnBuilder {
	if b.err != nil {
		return b
	}
	if product == nil {
		b.err = &domain.ValidationError{Entity: "devolucion", Field: "producto", Value: nil, Reason: "es obligatorio"}
		return b
	}
	if quantity <= 0 {
		b.err = &domain.ValidationError{Entity: "devolucion", Field: "cantidad", Value: quantity, Reason: "debe ser mayor que cero"}
		return b
	}
	sold := b.sale.QuantityOf(product)
	returned := 0
	for _, it := range b.items {
		if it.Product == product {
			returned += it.Quantity
		}
	}
	if returned+quantity > sold {
		b.err = &domain.ValidationError{Entity: "devolucion", Field: "cantidad", Value: quantity,
			Reason: "supera la cantidad vendida en la venta original"}
		return b
	}
	b.items = append(b.items, entity.ReturnItem{
		Product:   product,
		Quantity:  quantity,
		Reason:    strings.TrimSpace(reason),
		Condition: strings.TrimSpace(condition),
	})
	return b
}

// WithStatus define el estado (solicitada, en_analisis, aprobada, concluida).
func (b *ReturnBuilder) WithStatus(status string) *ReturnBuilder {
	if b.err != nil {
		return b
	}
	if !entity.IsValidReturnStatus(status) {
		b.err = &domain.ValidationError{Entity: "devolucion", Field: "estado", Value: status,
			Reason: "debe ser solicitada, en_analisis, aprobada o concluida"}
		return b
	}
	b.status = status
	return b
}

// WithNotes observaciones libres.
func (b *ReturnBuilder) WithNotes(notes string) *ReturnBuilder {
	b.notes = notes
	return b
}

// WithExchangeSale enlaza la venta de reemplazo de un cambio.
func (b *ReturnBuilder) WithExchangeSale(sale *entity.Sale) *ReturnBuilder {
	b.exchange = sale
	return b
}

// WithDate fija la fecha; por defecto es el instante de Build.
func (b *ReturnBuilder) WithDate(date time.Time) *ReturnBuilder {
	b.date = date
	return b
}

// Err primer error registrado por un método fluido.
func (b *ReturnBuilder) Err() error {
	return b.err
}

// Build construye la devolución con una copia defensiva de los ítems.
func (b *ReturnBuilder) Build() (*entity.Return, error) {
	if b.err != nil {
		return nil, b.err
	}
	var missing []string
	if b.id == 0 {
		missing = append(missing, "id (use WithAutoID)")
	}
	if b.customer == "" {
		missing = append(missing, "cliente (use WithCustomer)")
	}
	if len(b.items) == 0 {
		missing = append(missing, "ítems (use AddItem)")
	}
	if len(missing) > 0 {
		return nil, &domain.IncompleteEntityError{Entity: "devolución", Missing: missing}
	}

	date := b.date
	if date.IsZero() {
		date = time.Now()
	}
	items := make([]entity.ReturnItem, len(b.items))
	copy(items, b.items)
	return &entity.Return{
		ID:           b.id,
		OriginalSale: b.sale,
		Customer:     b.customer,
		Items:        items,
		Status:       b.status,
		Date:         date,
		Notes:        b.notes,
		ExchangeSale: b.exchange,
	}, nil
}

// TransactionFactory registra el movimiento financiero de una devolución.
type TransactionFactory struct {
	seq *identity.Sequencer
	now func() time.Time
}

// NewTransactionFactory construye la fábrica de transacciones.
func NewTransactionFactory(seq *identity.Sequencer) *TransactionFactory {
	return &TransactionFactory{seq: seq, now: time.Now}
}

// Create valida tipo y monto, emite el ID y enlaza la transacción en ret.
// Una devolución admite una sola transacción.
func (f *TransactionFactory) Create(ret *entity.Return, kind string, amount decimal.Decimal) (*entity.Transaction, error) {
	if ret == nil {
		return nil, &domain.ValidationError{Entity: "transaccion", Field: "devolucion", Value: nil, Reason: "es obligatoria"}
	}
	if ret.Transaction != nil {
		return nil, &domain.ValidationError{Entity: "transaccion", Field: "devolucion", Value: ret.ID,
			Reason: "la devolución ya tiene una transacción"}
	}
	if !entity.IsValidTransactionKind(kind) {
		return nil, &domain.ValidationError{Entity: "transaccion", Field: "tipo", Value: kind,
			Reason: "debe ser reembolso, credito o pago_cambio"}
	}
	if amount.IsNegative() {
		return nil, &domain.ValidationError{Entity: "transaccion", Field: "valor", Value: amount, Reason: "no puede ser negativo"}
	}
	id, err := f.seq.Next(identity.CategoryTransaction)
	if err != nil {
		return nil, err
	}
	tx := &entity.Transaction{
		ID:       id,
		ReturnID: ret.ID,
		Kind:     kind,
		Amount:   amount,
		Date:     f.now(),
	}
	ret.Transaction = tx
	return tx, nil
}
