package identity

import (
	"sort"
	"sync"

	"github.com/jhoicas/inventario-core/internal/domain"
)

// Categorías de entidad con contador propio.
const (
	CategoryProduct       = "product"
	CategorySupplier      = "supplier"
	CategoryLocation      = "location"
	CategorySale          = "sale"
	CategoryPurchaseOrder = "purchase_order"
	CategoryReturn        = "return"
	CategoryTransaction   = "transaction"
)

var categories = []string{
	CategoryProduct,
	CategorySupplier,
	CategoryLocation,
	CategorySale,
	CategoryPurchaseOrder,
	CategoryReturn,
	CategoryTransaction,
}

// Sequencer emite IDs únicos y crecientes por categoría de entidad.
// Se construye una sola vez al iniciar el proceso y se inyecta por referencia en
// fábricas, builders y clonadores; no existe instancia global.
type Sequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequencer crea un secuenciador con todos los contadores en 0.
func NewSequencer() *Sequencer {
	s := &Sequencer{}
	s.Reset()
	return s
}

// Next incrementa y devuelve el contador de la categoría.
func (s *Sequencer) Next(category string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counters[category]; !ok {
		return 0, unknown(category)
	}
	s.counters[category]++
	return s.counters[category], nil
}

// Seed sobrescribe el contador (útil para importar datos existentes).
// No valida monotonicidad contra IDs ya emitidos: es responsabilidad del caller.
func (s *Sequencer) Seed(category string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counters[category]; !ok {
		return unknown(category)
	}
	s.counters[category] = value
	return nil
}

// Current devuelve el valor actual sin incrementar.
func (s *Sequencer) Current(category string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.counters[category]
	if !ok {
		return 0, unknown(category)
	}
	return v, nil
}

// Reset reinicia todos los contadores a 0. Es la única vía de reinicialización.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]int64, len(categories))
	for _, c := range categories {
		s.counters[c] = 0
	}
}

// Categories lista las categorías válidas en orden alfabético.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	sort.Strings(out)
	return out
}

func unknown(category string) error {
	return &domain.UnknownCategoryError{Category: category, Valid: Categories()}
}
