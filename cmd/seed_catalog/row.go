package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Columnas del CSV de catálogo (separador ';'):
//
//	tipo;nombre;categoria;proveedor;empresa;codigo_barras;precio_compra;precio_venta;punto_reorden;stock;componentes
//
// componentes solo aplica a kits: "codigo_barras:cantidad|codigo_barras:cantidad".
const columnCount = 11

type catalogRow struct {
	line          int
	kind          string
	name          string
	category      string
	supplierName  string
	company       string
	barcode       string
	purchasePrice decimal.Decimal
	salePrice     decimal.Decimal
	reorderPoint  int
	stock         int
	components    []componentRef
}

type componentRef struct {
	barcode  string
	quantity int
}

// decodingReader envuelve r para decodificar ISO-8859-1 cuando el archivo viene de hojas de cálculo antiguas.
func decodingReader(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return r
	}
}

func parseRow(line int, rec []string) (catalogRow, error) {
	if len(rec) < columnCount {
		return catalogRow{}, fmt.Errorf("línea %d: se esperaban %d columnas, hay %d", line, columnCount, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	row := catalogRow{
		line:         line,
		kind:         strings.ToLower(rec[0]),
		name:         rec[1],
		category:     rec[2],
		supplierName: rec[3],
		company:      rec[4],
		barcode:      rec[5],
	}

	var err error
	if row.purchasePrice, err = parseDecimal(rec[6]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: precio_compra: %w", line, err)
	}
	if row.salePrice, err = parseDecimal(rec[7]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: precio_venta: %w", line, err)
	}
	if row.reorderPoint, err = parseInt(rec[8]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: punto_reorden: %w", line, err)
	}
	if row.stock, err = parseInt(rec[9]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: stock: %w", line, err)
	}
	if row.components, err = parseComponents(rec[10]); err != nil {
		return catalogRow{}, fmt.Errorf("línea %d: componentes: %w", line, err)
	}
	return row, nil
}

// parseDecimal acepta coma o punto como separador decimal; vacío = 0.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseComponents(s string) ([]componentRef, error) {
	if s == "" {
		return nil, nil
	}
	var refs []componentRef
	for _, part := range strings.Split(s, "|") {
		code, qty, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("componente %q: formato codigo:cantidad", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("componente %q: %w", part, err)
		}
		refs = append(refs, componentRef{barcode: strings.TrimSpace(code), quantity: n})
	}
	return refs, nil
}
