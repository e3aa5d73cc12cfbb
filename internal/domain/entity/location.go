package entity

import "fmt"

// Location representa un lugar físico donde se mantiene stock (bodega o tienda).
type Location struct {
	ID      int64
	Name    string
	Address string
}

func (l *Location) String() string {
	return fmt.Sprintf("%d - %s", l.ID, l.Name)
}

// Supplier datos de contacto de un proveedor. Inmutable una vez referenciado por productos u órdenes.
type Supplier struct {
	ID      int64
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

func (s *Supplier) String() string {
	return fmt.Sprintf("%d - %s (%s)", s.ID, s.Name, s.Company)
}
