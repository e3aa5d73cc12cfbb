package prototype

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// ProductOverrides campos sobrescribibles al clonar un producto. nil = conservar el valor del origen.
// ID y stock no son sobrescribibles: el clon siempre recibe ID nuevo y stock vacío.
type ProductOverrides struct {
	Name          *string
	Description   *string
	Category      *string
	Supplier      *entity.Supplier
	Barcode       *string
	PurchasePrice *decimal.Decimal // ignorado si el resultado es kit (se recalcula)
	SalePrice     *decimal.Decimal
	ReorderPoint  *int
	Type          *entity.ProductType
	Components    []entity.KitComponent
}

// PurchaseOrderOverrides campos sobrescribibles al clonar una orden de compra.
type PurchaseOrderOverrides struct {
	Supplier  *entity.Supplier
	Status    *string
	Items     []entity.PurchaseOrderItem
	CreatedAt *time.Time
}

// Nombres aceptados por ParseProductOverrides.
const (
	AttrName          = "name"
	AttrDescription   = "description"
	AttrCategory      = "category"
	AttrSupplier      = "supplier"
	AttrBarcode       = "barcode"
	AttrPurchasePrice = "purchase_price"
	AttrSalePrice     = "sale_price"
	AttrReorderPoint  = "reorder_point"
	AttrType          = "type"
	AttrComponents    = "components"
	AttrStatus        = "status"
	AttrItems         = "items"
	AttrCreatedAt     = "created_at"
)

// ParseProductOverrides convierte ajustes dinámicos (ej. leídos de un archivo) en ProductOverrides.
// Una clave fuera del conjunto sobrescribible falla con UnknownAttributeError.
func ParseProductOverrides(attrs map[string]any) (ProductOverrides, error) {
	var ov ProductOverrides
	for key, v := range attrs {
		var err error
		switch key {
		case AttrName:
			ov.Name, err = asString(key, v)
		case AttrDescription:
			ov.Description, err = asString(key, v)
		case AttrCategory:
			ov.Category, err = asString(key, v)
		case AttrBarcode:
			ov.Barcode, err = asString(key, v)
		case AttrSupplier:
			s, ok := v.(*entity.Supplier)
			if !ok {
				err = typeError("producto", key, v)
			}
			ov.Supplier = s
		case AttrPurchasePrice:
			ov.PurchasePrice, err = asDecimal(key, v)
		case AttrSalePrice:
			ov.SalePrice, err = asDecimal(key, v)
		case AttrReorderPoint:
			n, ok := v.(int)
			if !ok {
				err = typeError("producto", key, v)
			}
			ov.ReorderPoint = &n
		case AttrType:
			var t entity.ProductType
			switch tv := v.(type) {
			case entity.ProductType:
				t = tv
			case string:
				t = entity.ProductType(tv)
			default:
				err = typeError("producto", key, v)
			}
			ov.Type = &t
		case AttrComponents:
			c, ok := v.([]entity.KitComponent)
			if !ok {
				err = typeError("producto", key, v)
			}
			ov.Components = c
		default:
			return ProductOverrides{}, &domain.UnknownAttributeError{Entity: "Producto", Attribute: key}
		}
		if err != nil {
			return ProductOverrides{}, err
		}
	}
	return ov, nil
}

// ParsePurchaseOrderOverrides equivalente de ParseProductOverrides para órdenes de compra.
func ParsePurchaseOrderOverrides(attrs map[string]any) (PurchaseOrderOverrides, error) {
	var ov PurchaseOrderOverrides
	for key, v := range attrs {
		switch key {
		case AttrSupplier:
			s, ok := v.(*entity.Supplier)
			if !ok {
				return PurchaseOrderOverrides{}, typeError("orden_compra", key, v)
			}
			ov.Supplier = s
		case AttrStatus:
			s, ok := v.(string)
			if !ok {
				return PurchaseOrderOverrides{}, typeError("orden_compra", key, v)
			}
			ov.Status = &s
		case AttrItems:
			items, ok := v.([]entity.PurchaseOrderItem)
			if !ok {
				return PurchaseOrderOverrides{}, typeError("orden_compra", key, v)
			}
			ov.Items = items
		case AttrCreatedAt:
			t, ok := v.(time.Time)
			if !ok {
				return PurchaseOrderOverrides{}, typeError("orden_compra", key, v)
			}
			ov.CreatedAt = &t
		default:
			return PurchaseOrderOverrides{}, &domain.UnknownAttributeError{Entity: "OrdenCompra", Attribute: key}
		}
	}
	return ov, nil
}

func asString(key string, v any) (*string, error) {
	s, ok := v.(string)
	if !ok {
		return nil, typeError("producto", key, v)
	}
	return &s, nil
}

func asDecimal(key string, v any) (*decimal.Decimal, error) {
	var d decimal.Decimal
	switch tv := v.(type) {
	case decimal.Decimal:
		d = tv
	case int:
		d = decimal.NewFromInt(int64(tv))
	case int64:
		d = decimal.NewFromInt(tv)
	case float64:
		d = decimal.NewFromFloat(tv)
	case string:
		parsed, err := decimal.NewFromString(tv)
		if err != nil {
			return nil, typeError("producto", key, v)
		}
		d = parsed
	default:
		return nil, typeError("producto", key, v)
	}
	return &d, nil
}

func typeError(entityName, key string, v any) error {
	return &domain.ValidationError{Entity: entityName, Field: key, Value: v,
		Reason: fmt.Sprintf("tipo %T no admitido", v)}
}
