package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderStatusPending   = "pendiente"
	PurchaseOrderStatusReceived  = "recibida"
	PurchaseOrderStatusCancelled = "cancelada"
)

// PurchaseOrderStatuses estados válidos en orden de ciclo de vida.
var PurchaseOrderStatuses = []string{
	PurchaseOrderStatusPending,
	PurchaseOrderStatusReceived,
	PurchaseOrderStatusCancelled,
}

// IsValidPurchaseOrderStatus indica si s es un estado de orden de compra conocido.
func IsValidPurchaseOrderStatus(s string) bool {
	for _, v := range PurchaseOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PurchaseOrderItem representa un producto comprado al proveedor dentro de una orden.
type PurchaseOrderItem struct {
	Product   *Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal = Quantity * UnitPrice.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseOrder representa una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID        int64
	Supplier  *Supplier
	Items     []PurchaseOrderItem
	Status    string // pendiente, recibida, cancelada
	CreatedAt time.Time
}

// Total suma de subtotales.
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o *PurchaseOrder) String() string {
	company := ""
	if o.Supplier != nil {
		company = o.Supplier.Company
	}
	return fmt.Sprintf("OC #%d | %s | Proveedor: %s | %s | Estado: %s",
		o.ID, o.CreatedAt.Format(dateLayout), company, formatMoney(o.Total()), o.Status)
}
