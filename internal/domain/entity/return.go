package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del proceso de devolución o cambio.
const (
	ReturnStatusRequested   = "solicitada"
	ReturnStatusUnderReview = "en_analisis"
	ReturnStatusApproved    = "aprobada"
	ReturnStatusCompleted   = "concluida"
)

// ReturnStatuses estados válidos en orden de ciclo de vida.
var ReturnStatuses = []string{
	ReturnStatusRequested,
	ReturnStatusUnderReview,
	ReturnStatusApproved,
	ReturnStatusCompleted,
}

// IsValidReturnStatus indica si s es un estado de devolución conocido.
func IsValidReturnStatus(s string) bool {
	for _, v := range ReturnStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Tipos de transacción financiera asociada a una devolución.
const (
	TransactionKindRefund          = "reembolso"
	TransactionKindStoreCredit     = "credito"
	TransactionKindExchangePayment = "pago_cambio"
)

// IsValidTransactionKind indica si k es un tipo de transacción conocido.
func IsValidTransactionKind(k string) bool {
	switch k {
	case TransactionKindRefund, TransactionKindStoreCredit, TransactionKindExchangePayment:
		return true
	}
	return false
}

// ReturnItem producto devuelto dentro de un proceso de devolución.
type ReturnItem struct {
	Product   *Product
	Quantity  int
	Reason    string
	Condition string // estado físico del producto devuelto
}

// Subtotal valor del ítem devuelto al precio de venta del producto.
func (i ReturnItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.SalePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction movimiento financiero asociado a una devolución o cambio.
type Transaction struct {
	ID       int64
	ReturnID int64
	Kind     string // reembolso, credito, pago_cambio
	Amount   decimal.Decimal
	Date     time.Time
}

// Return representa el proceso de devolución o cambio de una venta.
type Return struct {
	ID           int64
	OriginalSale *Sale
	Customer     string
	Items        []ReturnItem
	Status       string
	Date         time.Time
	Notes        string
	Transaction  *Transaction // nil hasta que se registre el movimiento financiero
	ExchangeSale *Sale        // venta de reemplazo en un cambio
}

// TotalRefunded suma de subtotales devueltos.
func (r *Return) TotalRefunded() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (r *Return) String() string {
	var saleID int64
	if r.OriginalSale != nil {
		saleID = r.OriginalSale.ID
	}
	return fmt.Sprintf("Devolución #%d | %s | Venta orig.: #%d | Cliente: %s | Valor: %s | Estado: %s",
		r.ID, r.Date.Format(dateLayout), saleID, r.Customer, formatMoney(r.TotalRefunded()), r.Status)
}
