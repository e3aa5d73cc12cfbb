package inventory

import "github.com/shopspring/decimal"

// CostLine costo unitario de un componente y la cantidad requerida para armar un kit.
type CostLine struct {
	UnitCost decimal.Decimal
	Quantity int
}

// KitCost implementa el costo derivado de un kit (servicio de dominio).
// Costo = Σ (CostoComponente * CantidadRequerida)
func KitCost(lines []CostLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Buildable cuántas unidades completas se arman con el stock disponible de un componente.
// División entera; una cantidad requerida <= 0 significa "no armable" y devuelve 0.
func Buildable(available, required int) int {
	if required <= 0 || available <= 0 {
		return 0
	}
	return available / required
}
