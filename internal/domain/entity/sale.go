package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem representa una línea de venta.
type SaleItem struct {
	Product   *Product
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal = Quantity * UnitPrice (derivado, nunca almacenado).
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale representa la cabecera de una venta con sus líneas.
type Sale struct {
	ID       int64
	Customer string
	Items    []SaleItem
	Date     time.Time
}

// Total suma de subtotales.
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// QuantityOf unidades vendidas de un producto en esta venta.
func (s *Sale) QuantityOf(p *Product) int {
	n := 0
	for _, it := range s.Items {
		if it.Product == p {
			n += it.Quantity
		}
	}
	return n
}

func (s *Sale) String() string {
	return fmt.Sprintf("Venta #%d | Fecha: %s | Cliente: %s | Valor: %s",
		s.ID, s.Date.Format(dateLayout), s.Customer, formatMoney(s.Total()))
}
