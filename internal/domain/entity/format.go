package entity

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "02/01/2006"

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney representa un monto con separador de miles y dos decimales (ej. "R$ 1,234.50").
// La parte entera se agrupa con moneyPrinter y los centavos salen del decimal exacto.
func formatMoney(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	_, cents, _ := strings.Cut(r.StringFixed(2), ".")
	return moneyPrinter.Sprintf("R$ %s%d.%s", sign, r.IntPart(), cents)
}
