// seed_catalog carga un catálogo inicial (proveedores, productos, kits y stock) desde un CSV
// y reporta la lista de reposición resultante.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto usa IMPORT_FILE (catalogo.csv). IMPORT_ENCODING=iso-8859-1 para archivos Latin-1.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/inventario-core/internal/application/inventory"
	"github.com/jhoicas/inventario-core/internal/application/inventory/metrics"
	"github.com/jhoicas/inventario-core/internal/domain/catalog"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/identity"
	"github.com/jhoicas/inventario-core/pkg/config"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).
		WithStr("run_id", uuid.NewString())

	path := cfg.Import.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := run(cfg, path, log); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("importar catálogo")
	}
}

// run importa el catálogo de path y registra la lista de reposición y los contadores.
func run(cfg *config.Config, path string, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()

	reg := prometheus.NewRegistry()
	uc := inventory.NewCatalogUseCase(identity.NewSequencer(), log).WithMetrics(metrics.New(reg))
	if err := uc.SeedIDs(cfg.IDs.Seeds); err != nil {
		return fmt.Errorf("semillas de ID: %w", err)
	}

	imp, err := newImporter(uc, cfg.Import.Location)
	if err != nil {
		return fmt.Errorf("ubicación de importación: %w", err)
	}
	if err := imp.run(decodingReader(f, cfg.Import.Encoding)); err != nil {
		return err
	}

	suggestions, err := inventory.NewReplenishmentUseCase(uc).GenerateReplenishmentList(imp.products)
	if err != nil {
		return fmt.Errorf("lista de reposición: %w", err)
	}
	for _, s := range suggestions {
		log.Info().
			Int("priority", s.Priority).
			Int64("product_id", s.Product.ID).
			Str("name", s.Product.Name).
			Int("suggested_qty", s.SuggestedOrderQty).
			Str("margin_pct", s.GrossMarginPct.StringFixed(2)).
			Msg("reposición sugerida")
	}

	logCounters(log, reg)
	log.Info().
		Str("app", cfg.App.Name).
		Int("suppliers", len(imp.suppliers)).
		Int("products", len(imp.products)).
		Int("movements", len(uc.Movements())).
		Int("replenishment", len(suggestions)).
		Msg("catálogo importado")
	return nil
}

// importer crea las entidades del CSV en orden; los kits referencian componentes de líneas anteriores.
type importer struct {
	uc        *inventory.CatalogUseCase
	location  *entity.Location
	suppliers map[string]*entity.Supplier
	byBarcode map[string]*entity.Product
	products  []*entity.Product
}

func newImporter(uc *inventory.CatalogUseCase, location string) (*importer, error) {
	loc, err := uc.CreateLocation(location, "")
	if err != nil {
		return nil, err
	}
	return &importer{
		uc:        uc,
		location:  loc,
		suppliers: make(map[string]*entity.Supplier),
		byBarcode: make(map[string]*entity.Product),
	}, nil
}

func (imp *importer) run(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if line == 1 && len(rec) > 0 && rec[0] == "tipo" {
			continue
		}
		row, err := parseRow(line, rec)
		if err != nil {
			return err
		}
		if err := imp.apply(row); err != nil {
			return fmt.Errorf("línea %d: %w", row.line, err)
		}
	}
}

func (imp *importer) apply(row catalogRow) error {
	sup, err := imp.supplier(row)
	if err != nil {
		return err
	}

	in := catalog.ProductInput{
		Name:          row.name,
		Category:      row.category,
		Supplier:      sup,
		Barcode:       row.barcode,
		PurchasePrice: row.purchasePrice,
		SalePrice:     row.salePrice,
		ReorderPoint:  row.reorderPoint,
	}
	for _, ref := range row.components {
		comp, ok := imp.byBarcode[ref.barcode]
		if !ok {
			return fmt.Errorf("componente %s no encontrado", ref.barcode)
		}
		in.Components = append(in.Components, entity.KitComponent{Product: comp, Quantity: ref.quantity})
	}

	p, err := imp.uc.CreateProduct(entity.ProductType(row.kind), in)
	if err != nil {
		return err
	}
	if row.stock > 0 && !p.IsKit() {
		if err := imp.uc.ReceiveStock(p, imp.location, row.stock); err != nil {
			return err
		}
	}
	if p.Barcode != "" {
		imp.byBarcode[p.Barcode] = p
	}
	imp.products = append(imp.products, p)
	return nil
}

// supplier reutiliza el proveedor por empresa; filas sin empresa quedan sin proveedor.
func (imp *importer) supplier(row catalogRow) (*entity.Supplier, error) {
	if row.company == "" {
		return nil, nil
	}
	if s, ok := imp.suppliers[row.company]; ok {
		return s, nil
	}
	name := row.supplierName
	if name == "" {
		name = row.company
	}
	s, err := imp.uc.CreateSupplier(catalog.SupplierInput{Name: name, Company: row.company})
	if err != nil {
		return nil, err
	}
	imp.suppliers[row.company] = s
	return s, nil
}

// logCounters vuelca los contadores de construcción al log; la herramienta no expone /metrics.
func logCounters(log *logger.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("leer métricas")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			ev := log.Debug().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				ev = ev.Float64("value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				ev = ev.Float64("value", m.GetGauge().GetValue())
			}
			ev.Msg("métrica")
		}
	}
}
