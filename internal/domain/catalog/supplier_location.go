package catalog

import (
	"strings"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
)

// SupplierInput datos de contacto de un proveedor.
type SupplierInput struct {
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

// SupplierFactory crea proveedores con ID emitido por el secuenciador.
type SupplierFactory struct {
	seq *identity.Sequencer
}

// NewSupplierFactory construye la fábrica de proveedores.
func NewSupplierFactory(seq *identity.Sequencer) *SupplierFactory {
	return &SupplierFactory{seq: seq}
}

// Create exige nombre y empresa no vacíos.
func (f *SupplierFactory) Create(in SupplierInput) (*entity.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Entity: "proveedor", Field: "nombre", Value: in.Name, Reason: "no puede ser vacío"}
	}
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return nil, &domain.ValidationError{Entity: "proveedor", Field: "empresa", Value: in.Company, Reason: "no puede ser vacía"}
	}
	id, err := f.seq.Next(identity.CategorySupplier)
	if err != nil {
		return nil, err
	}
	return &entity.Supplier{
		ID:      id,
		Name:    name,
		Company: company,
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
	}, nil
}

// LocationFactory crea ubicaciones de stock.
type LocationFactory struct {
	seq *identity.Sequencer
}

// NewLocationFactory construye la fábrica de ubicaciones.
func NewLocationFactory(seq *identity.Sequencer) *LocationFactory {
	return &LocationFactory{seq: seq}
}

// Create exige nombre no vacío; la dirección es opcional.
func (f *LocationFactory) Create(name, address string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Entity: "ubicacion", Field: "nombre", Value: name, Reason: "no puede ser vacío"}
	}
	id, err := f.seq.Next(identity.CategoryLocation)
	if err != nil {
		return nil, err
	}
	return &entity.Location{ID: id, Name: name, Address: strings.TrimSpace(address)}, nil
}
