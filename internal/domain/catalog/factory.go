package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// ProductInput datos de entrada para crear un producto.
// En kits PurchasePrice se ignora: el costo se deriva de Components.
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Supplier      *entity.Supplier
	Barcode       string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	ReorderPoint  int
	Components    []entity.KitComponent
}

// ProductFactory valida las invariantes de una variante y construye el producto.
// Nunca devuelve un producto parcialmente válido; un fallo de validación no consume ID.
type ProductFactory interface {
	Create(in ProductInput) (*entity.Product, error)
}

// IndividualFactory crea productos individuales.
type IndividualFactory struct {
	seq *identity.Sequencer
}

// NewIndividualFactory construye la fábrica de productos individuales.
func NewIndividualFactory(seq *identity.Sequencer) *IndividualFactory {
	return &IndividualFactory{seq: seq}
}

// Create valida precios y margen, y emite el ID.
func (f *IndividualFactory) Create(in ProductInput) (*entity.Product, error) {
	if err := validateCommon(in.PurchasePrice, in.SalePrice, in.ReorderPoint); err != nil {
		return nil, err
	}
	if in.SalePrice.LessThan(in.PurchasePrice) {
		return nil, domain.NewMarginError("producto", in.SalePrice, in.PurchasePrice)
	}
	id, err := f.seq.Next(identity.CategoryProduct)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:              id,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Supplier:        in.Supplier,
		Barcode:         in.Barcode,
		PurchasePrice:   in.PurchasePrice,
		SalePrice:       in.SalePrice,
		ReorderPoint:    in.ReorderPoint,
		Type:            entity.ProductTypeIndividual,
		StockByLocation: make(map[string]int),
	}, nil
}

// KitFactory crea kits con costo derivado de sus componentes.
type KitFactory struct {
	seq *identity.Sequencer
}

// NewKitFactory construye la fábrica de kits.
func NewKitFactory(seq *identity.Sequencer) *KitFactory {
	return &KitFactory{seq: seq}
}

// Create valida componentes, deriva el costo con RecalcPurchasePrice y exige margen no negativo.
// El ID se emite solo después de que todas las validaciones pasan.
func (f *KitFactory) Create(in ProductInput) (*entity.Product, error) {
	if len(in.Components) == 0 {
		return nil, &domain.ValidationError{Entity: "kit", Field: "componentes", Value: 0,
			Reason: "el kit debe tener al menos un componente"}
	}
	for i, c := range in.Components {
		if c.Product == nil {
			return nil, &domain.ValidationError{Entity: "kit", Field: "componentes", Value: i,
				Reason: "componente sin producto"}
		}
		if c.Quantity < 1 {
			return nil, &domain.ValidationError{Entity: "kit", Field: "cantidad", Value: c.Quantity,
				Reason: "la cantidad por kit debe ser al menos 1"}
		}
	}
	if err := validateCommon(decimal.Zero, in.SalePrice, in.ReorderPoint); err != nil {
		return nil, err
	}

	components := make([]entity.KitComponent, len(in.Components))
	copy(components, in.Components)
	kit := &entity.Product{
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Supplier:        in.Supplier,
		Barcode:         in.Barcode,
		PurchasePrice:   decimal.Zero,
		SalePrice:       in.SalePrice,
		ReorderPoint:    in.ReorderPoint,
		Type:            entity.ProductTypeKit,
		StockByLocation: make(map[string]int),
		Components:      components,
	}
	kit.RecalcPurchasePrice()
	if kit.SalePrice.LessThan(kit.PurchasePrice) {
		return nil, domain.NewMarginError("kit", kit.SalePrice, kit.PurchasePrice)
	}

	id, err := f.seq.Next(identity.CategoryProduct)
	if err != nil {
		return nil, err
	}
	kit.ID = id
	return kit, nil
}

func validateCommon(purchase, sale decimal.Decimal, reorderPoint int) error {
	if purchase.IsNegative() {
		return &domain.ValidationError{Entity: "producto", Field: "precio_compra", Value: purchase,
			Reason: "no puede ser negativo"}
	}
	if sale.IsNegative() {
		return &domain.ValidationError{Entity: "producto", Field: "precio_venta", Value: sale,
			Reason: "no puede ser negativo"}
	}
	if reorderPoint < 0 {
		return &domain.ValidationError{Entity: "producto", Field: "punto_reorden", Value: reorderPoint,
			Reason: "no puede ser negativo"}
	}
	return nil
}
