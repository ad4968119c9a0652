// seed_products genera un script SQL para poblar el catálogo de productos a
// partir de un CSV exportado desde el sistema anterior (Excel/legacy, típicamente
// en ISO-8859-1 por las tildes).
//
// Formato esperado del CSV (con cabecera):
//
//	nombre;categoria;precio_compra;precio_venta;stock
//
// Uso: go run ./cmd/seed_products [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Escribe: scripts/seed_products.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	name     string
	category string
	purchase decimal.Decimal
	selling  decimal.Decimal
	stock    int64
}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports legacy vienen en ISO-8859-1; decodificamos a UTF-8 al leer.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	var rows []productRow
	var skipped int
	for i, rec := range records[1:] { // saltar cabecera
		if len(rec) < 5 {
			skipped++
			continue
		}
		name := strings.TrimSpace(rec[0])
		category := strings.TrimSpace(rec[1])
		purchase, err1 := decimal.NewFromString(normalizeNumber(rec[2]))
		selling, err2 := decimal.NewFromString(normalizeNumber(rec[3]))
		stock, err3 := decimal.NewFromString(normalizeNumber(rec[4]))
		if name == "" || err1 != nil || err2 != nil || err3 != nil ||
			purchase.IsNegative() || selling.IsNegative() || stock.IsNegative() {
			fmt.Fprintf(os.Stderr, "Fila %d descartada: %v\n", i+2, rec)
			skipped++
			continue
		}
		rows = append(rows, productRow{
			name:     name,
			category: category,
			purchase: purchase,
			selling:  selling,
			stock:    stock.IntPart(),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Ninguna fila válida en el CSV")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "scripts")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "seed_products.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))
	out.WriteString("INSERT INTO products (id, name, category, purchase_price, selling_price, stock) VALUES\n")
	for i, row := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (gen_random_uuid(), '%s', '%s', %s, %s, %d)%s\n",
			escapeSQL(row.name), escapeSQL(row.category),
			row.purchase.StringFixed(2), row.selling.StringFixed(2), row.stock, sep)
	}
	out.WriteString("ON CONFLICT DO NOTHING;\n")

	fmt.Printf("Generado %s: %d productos (%d filas descartadas)\n", outPath, len(rows), skipped)
}

// normalizeNumber acepta coma decimal ("1.234,50") además de punto ("1234.50").
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, ","); i >= 0 {
		// Formato con coma decimal: los puntos son separadores de miles.
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	}
	return s
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
