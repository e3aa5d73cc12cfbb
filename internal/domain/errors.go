package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
// Los tipos estructurados de abajo envuelven estos sentinelas para que el caller
// pueda usar errors.Is sin perder el contexto (errors.As).
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientMargin = errors.New("margen insuficiente")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrIncompleteEntity   = errors.New("entidad incompleta")
	ErrUnknownCategory    = errors.New("categoría de ID desconocida")
	ErrUnknownAttribute   = errors.New("atributo desconocido")
	ErrCyclicComposition  = errors.New("composición cíclica de kit")
)

// ValidationError entrada inválida para una fábrica o builder (precio negativo, campo vacío, estado inválido).
type ValidationError struct {
	Entity string
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: campo %q inválido (%v): %s", e.Entity, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// MarginError precio de venta por debajo del costo. Shortfall = Cost - SalePrice.
type MarginError struct {
	Entity    string
	SalePrice decimal.Decimal
	Cost      decimal.Decimal
	Shortfall decimal.Decimal
}

// NewMarginError calcula el faltante a partir del precio de venta y el costo.
func NewMarginError(entity string, salePrice, cost decimal.Decimal) *MarginError {
	return &MarginError{
		Entity:    entity,
		SalePrice: salePrice,
		Cost:      cost,
		Shortfall: cost.Sub(salePrice),
	}
}

func (e *MarginError) Error() string {
	return fmt.Sprintf("%s: precio de venta (R$ %s) menor que el costo (R$ %s); margen: R$ %s",
		e.Entity, e.SalePrice.StringFixed(2), e.Cost.StringFixed(2), e.Shortfall.Neg().StringFixed(2))
}

// Is permite tratar un MarginError como entrada inválida y como margen insuficiente.
func (e *MarginError) Is(target error) bool {
	return target == ErrInvalidInput || target == ErrInsufficientMargin
}

// InsufficientStockError la cantidad solicitada supera el stock disponible calculado.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para '%s' (#%d). Disponible: %d, Solicitado: %d",
		e.ProductName, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IncompleteEntityError build() invocado antes de definir los campos obligatorios.
type IncompleteEntityError struct {
	Entity  string
	Missing []string
}

func (e *IncompleteEntityError) Error() string {
	return fmt.Sprintf("%s incompleta: falta %s", e.Entity, strings.Join(e.Missing, ", "))
}

func (e *IncompleteEntityError) Unwrap() error { return ErrIncompleteEntity }

// UnknownCategoryError categoría no registrada en el secuenciador de IDs.
type UnknownCategoryError struct {
	Category string
	Valid    []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("tipo '%s' no es válido. Tipos válidos: %s", e.Category, strings.Join(e.Valid, ", "))
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// UnknownAttributeError override de clonación sobre un atributo que la entidad no expone.
type UnknownAttributeError struct {
	Entity    string
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("atributo '%s' no existe en %s", e.Attribute, e.Entity)
}

func (e *UnknownAttributeError) Unwrap() error { return ErrUnknownAttribute }

// CyclicCompositionError un kit se referencia a sí mismo (directa o transitivamente).
// Path contiene los IDs recorridos; el último se repite dentro del camino.
type CyclicCompositionError struct {
	Path []int64
}

func (e *CyclicCompositionError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("composición cíclica de kit: %s", strings.Join(parts, " -> "))
}

func (e *CyclicCompositionError) Unwrap() error { return ErrCyclicComposition }
