package entity

import "time"

// Tipos de movimiento de inventario (value object conceptual).
const (
	MovementKindIn       = "entrada"
	MovementKindOut      = "salida"
	MovementKindAdjust   = "ajuste"
	MovementKindTransfer = "traslado"
)

// MovementRecord registro de auditoría sin identidad: qué producto se movió, cuánto y dónde.
type MovementRecord struct {
	Product  *Product
	Kind     string
	Quantity int
	Location *Location
	Date     time.Time
}

// MovementLog historial append-only de movimientos.
type MovementLog struct {
	records []MovementRecord
}

// Append agrega un registro al final del historial.
func (l *MovementLog) Append(r MovementRecord) {
	l.records = append(l.records, r)
}

// Records devuelve una copia del historial en orden de inserción.
func (l *MovementLog) Records() []MovementRecord {
	out := make([]MovementRecord, len(l.records))
	copy(out, l.records)
	return out
}

// ByProduct filtra el historial por producto.
func (l *MovementLog) ByProduct(p *Product) []MovementRecord {
	var out []MovementRecord
	for _, r := range l.records {
		if r.Product == p {
			out = append(out, r)
		}
	}
	return out
}

// Len cantidad de registros.
func (l *MovementLog) Len() int {
	return len(l.records)
}
