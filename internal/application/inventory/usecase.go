package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/inventory/metrics"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/builder"
	"github.com/jhoicas/inventario-core/internal/domain/catalog"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
	"github.com/jhoicas/inventario-core/internal/domain/prototype"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// CatalogUseCase punto único de construcción de entidades: proveedores, ubicaciones, productos,
// ventas, órdenes, devoluciones y clones. Comparte un solo Sequencer entre todas las fábricas.
// No es seguro para uso concurrente (los builders internos son de un solo escritor).
type CatalogUseCase struct {
	seq          *identity.Sequencer
	log          *logger.Logger
	metrics      *metrics.Metrics
	suppliers    *catalog.SupplierFactory
	locations    *catalog.LocationFactory
	individuals  *catalog.IndividualFactory
	kits         *catalog.KitFactory
	productClone *prototype.ProductCloner
	orderClone   *prototype.PurchaseOrderCloner
	transactions *builder.TransactionFactory
	movements    entity.MovementLog
}

// NewCatalogUseCase construye el caso de uso. log puede ser nil (se usa logger.Nop).
func NewCatalogUseCase(seq *identity.Sequencer, log *logger.Logger) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogUseCase{
		seq:          seq,
		log:          log.Named("catalogo"),
		suppliers:    catalog.NewSupplierFactory(seq),
		locations:    catalog.NewLocationFactory(seq),
		individuals:  catalog.NewIndividualFactory(seq),
		kits:         catalog.NewKitFactory(seq),
		productClone: prototype.NewProductCloner(seq),
		orderClone:   prototype.NewPurchaseOrderCloner(seq),
		transactions: builder.NewTransactionFactory(seq),
	}
}

// WithMetrics activa los contadores de construcción. Sin métricas el caso de uso solo registra logs.
func (uc *CatalogUseCase) WithMetrics(m *metrics.Metrics) *CatalogUseCase {
	uc.metrics = m
	return uc
}

// Sequencer devuelve el secuenciador compartido.
func (uc *CatalogUseCase) Sequencer() *identity.Sequencer {
	return uc.seq
}

// SeedIDs fija los contadores iniciales (importación de datos existentes).
func (uc *CatalogUseCase) SeedIDs(seeds map[string]int64) error {
	for category, value := range seeds {
		if err := uc.seq.Seed(category, value); err != nil {
			uc.log.Error().Err(err).Str("category", category).Msg("semilla de ID inválida")
			return err
		}
		uc.log.Info().Str("category", category).Int64("value", value).Msg("contador de ID inicializado")
	}
	return nil
}

// CreateSupplier registra un proveedor.
func (uc *CatalogUseCase) CreateSupplier(in catalog.SupplierInput) (*entity.Supplier, error) {
	s, err := uc.suppliers.Create(in)
	uc.metrics.Observe("proveedor", err)
	if err != nil {
		uc.log.Warn().Err(err).Str("name", in.Name).Msg("proveedor rechazado")
		return nil, err
	}
	uc.log.Info().Int64("supplier_id", s.ID).Str("company", s.Company).Msg("proveedor creado")
	return s, nil
}

// CreateLocation registra una ubicación de stock.
func (uc *CatalogUseCase) CreateLocation(name, address string) (*entity.Location, error) {
	l, err := uc.locations.Create(name, address)
	uc.metrics.Observe("ubicacion", err)
	if err != nil {
		uc.log.Warn().Err(err).Str("name", name).Msg("ubicación rechazada")
		return nil, err
	}
	uc.log.Info().Int64("location_id", l.ID).Str("name", l.Name).Msg("ubicación creada")
	return l, nil
}

// CreateProduct crea un producto con la fábrica de su variante.
func (uc *CatalogUseCase) CreateProduct(kind entity.ProductType, in catalog.ProductInput) (*entity.Product, error) {
	var f catalog.ProductFactory
	switch kind {
	case entity.ProductTypeIndividual:
		f = uc.individuals
	case entity.ProductTypeKit:
		f = uc.kits
	default:
		return nil, &domain.ValidationError{Entity: "producto", Field: "tipo", Value: kind, Reason: "debe ser individual o kit"}
	}
	p, err := f.Create(in)
	uc.metrics.Observe("producto", err)
	if err != nil {
		uc.log.Warn().Err(err).Str("type", string(kind)).Str("name", in.Name).Msg("producto rechazado")
		return nil, err
	}
	uc.log.Info().
		Int64("product_id", p.ID).
		Str("type", string(p.Type)).
		Str("purchase_price", p.PurchasePrice.StringFixed(2)).
		Str("sale_price", p.SalePrice.StringFixed(2)).
		Msg("producto creado")
	return p, nil
}

// ReceiveStock suma qty al stock del producto en la ubicación y lo registra en el historial.
func (uc *CatalogUseCase) ReceiveStock(p *entity.Product, loc *entity.Location, qty int) error {
	if p == nil || loc == nil {
		return &domain.ValidationError{Entity: "movimiento", Field: "producto/ubicacion", Value: nil, Reason: "son obligatorios"}
	}
	if qty <= 0 {
		return &domain.ValidationError{Entity: "movimiento", Field: "cantidad", Value: qty, Reason: "debe ser mayor que cero"}
	}
	if err := p.SetStock(loc.Name, p.StockAt(loc.Name)+qty); err != nil {
		return err
	}
	uc.movements.Append(entity.MovementRecord{
		Product:  p,
		Kind:     entity.MovementKindIn,
		Quantity: qty,
		Location: loc,
		Date:     nowFunc(),
	})
	uc.log.Debug().Int64("product_id", p.ID).Str("location", loc.Name).Int("quantity", qty).Msg("entrada de stock")
	return nil
}

// Movements historial de movimientos registrados por este caso de uso.
func (uc *CatalogUseCase) Movements() []entity.MovementRecord {
	return uc.movements.Records()
}

// RegisterSale construye una venta con ID automático. No descuenta stock.
func (uc *CatalogUseCase) RegisterSale(customer string, lines []dto.SaleLine) (*entity.Sale, error) {
	b := builder.NewSaleBuilder(uc.seq).WithCustomer(customer)
	for _, l := range lines {
		if l.UnitPrice != nil {
			b.AddItemWithPrice(l.Product, l.Quantity, *l.UnitPrice)
		} else {
			b.AddItem(l.Product, l.Quantity)
		}
	}
	// El ID se emite al final para no consumirlo en ventas rechazadas.
	if b.Err() == nil && len(lines) > 0 {
		b.WithAutoID()
	}
	sale, err := b.Build()
	uc.metrics.Observe("venta", err)
	if err != nil {
		uc.log.Warn().Err(err).Str("customer", customer).Msg("venta rechazada")
		return nil, err
	}
	uc.log.Info().Int64("sale_id", sale.ID).Str("total", sale.Total().StringFixed(2)).Msg("venta registrada")
	return sale, nil
}

// RegisterPurchaseOrder construye una orden de compra con ID automático.
func (uc *CatalogUseCase) RegisterPurchaseOrder(supplier *entity.Supplier, lines []dto.PurchaseLine, status string) (*entity.PurchaseOrder, error) {
	b, err := builder.NewPurchaseOrderBuilder(uc.seq, supplier)
	if err != nil {
		uc.metrics.Observe("orden_compra", err)
		uc.log.Warn().Err(err).Msg("orden de compra rechazada")
		return nil, err
	}
	if status != "" {
		b.WithStatus(status)
	}
	for _, l := range lines {
		if l.UnitPrice != nil {
			b.AddItemWithPrice(l.Product, l.Quantity, *l.UnitPrice)
		} else {
			b.AddItem(l.Product, l.Quantity)
		}
	}
	if b.Err() == nil && len(lines) > 0 {
		b.WithAutoID()
	}
	order, err := b.Build()
	uc.metrics.Observe("orden_compra", err)
	if err != nil {
		uc.log.Warn().Err(err).Int64("supplier_id", supplier.ID).Msg("orden de compra rechazada")
		return nil, err
	}
	uc.log.Info().Int64("order_id", order.ID).Str("status", order.Status).Str("total", order.Total().StringFixed(2)).Msg("orden de compra registrada")
	return order, nil
}

// RegisterReturn abre una devolución sobre una venta existente.
func (uc *CatalogUseCase) RegisterReturn(sale *entity.Sale, lines []dto.ReturnLine, notes string) (*entity.Return, error) {
	b, err := builder.NewReturnBuilder(uc.seq, sale)
	if err != nil {
		uc.metrics.Observe("devolucion", err)
		uc.log.Warn().Err(err).Msg("devolución rechazada")
		return nil, err
	}
	for _, l := range lines {
		b.AddItem(l.Product, l.Quantity, l.Reason, l.Condition)
	}
	if b.Err() == nil && len(lines) > 0 {
		b.WithAutoID()
	}
	ret, err := b.WithNotes(notes).Build()
	uc.metrics.Observe("devolucion", err)
	if err != nil {
		uc.log.Warn().Err(err).Int64("sale_id", sale.ID).Msg("devolución rechazada")
		return nil, err
	}
	uc.log.Info().Int64("return_id", ret.ID).Int64("sale_id", sale.ID).Msg("devolución registrada")
	return ret, nil
}

// SettleReturn registra la transacción de la devolución por el valor total devuelto.
func (uc *CatalogUseCase) SettleReturn(ret *entity.Return, kind string) (*entity.Transaction, error) {
	amount := decimal.Zero
	if ret != nil {
		amount = ret.TotalRefunded()
	}
	tx, err := uc.transactions.Create(ret, kind, amount)
	uc.metrics.Observe("transaccion", err)
	if err != nil {
		uc.log.Warn().Err(err).Str("kind", kind).Msg("transacción rechazada")
		return nil, err
	}
	uc.log.Info().Int64("transaction_id", tx.ID).Int64("return_id", tx.ReturnID).Str("amount", tx.Amount.StringFixed(2)).Msg("transacción registrada")
	return tx, nil
}

// CloneProduct crea una variación de un producto existente.
func (uc *CatalogUseCase) CloneProduct(src *entity.Product, name, barcode string, ov prototype.ProductOverrides) (*entity.Product, error) {
	p, err := uc.productClone.CloneAsVariant(src, name, barcode, ov)
	uc.metrics.Observe("producto", err)
	if err != nil {
		uc.log.Warn().Err(err).Msg("clon de producto rechazado")
		return nil, err
	}
	uc.log.Info().Int64("product_id", p.ID).Int64("source_id", src.ID).Msg("variación creada")
	return p, nil
}

// RepeatPurchaseOrder crea una orden recurrente (pendiente, fecha actual) a partir de otra.
func (uc *CatalogUseCase) RepeatPurchaseOrder(src *entity.PurchaseOrder) (*entity.PurchaseOrder, error) {
	o, err := uc.orderClone.CloneAsRecurring(src)
	uc.metrics.Observe("orden_compra", err)
	if err != nil {
		uc.log.Warn().Err(err).Msg("orden recurrente rechazada")
		return nil, err
	}
	uc.log.Info().Int64("order_id", o.ID).Int64("source_id", src.ID).Msg("orden recurrente creada")
	return o, nil
}
