// Package extract reads the four CSV datasets into raw records for the
// transform stage. It is a thin I/O wrapper: no cleaning happens here beyond
// character decoding, BOM stripping, field trimming, and turning empty cells
// into explicit nils. Any read failure is fatal and propagates to the caller.
package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"salesetl/internal/config"
	"salesetl/pkg/records"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// Table is one raw dataset plus the provenance facts recorded about it.
type Table struct {
	Name     string // logical dataset name, e.g. "customers"
	Path     string
	Checksum string // xxh3 of the raw file bytes, hex
	Rows     []records.Record
}

// Raw carries the four datasets in dependency order.
type Raw struct {
	Customers    Table
	Products     Table
	Orders       Table
	OrderDetails Table
}

// Datasets reads all four input files concurrently. The first failure
// cancels the remaining reads and is returned as-is.
func Datasets(ctx context.Context, cfg config.Config) (Raw, error) {
	var raw Raw
	g, ctx := errgroup.WithContext(ctx)

	read := func(dst *Table, name, path string) func() error {
		return func() error {
			t, err := readTable(ctx, name, path, cfg.CSVEncoding)
			if err != nil {
				return err
			}
			*dst = t
			return nil
		}
	}
	g.Go(read(&raw.Customers, "customers", cfg.CSVCustomers))
	g.Go(read(&raw.Products, "products", cfg.CSVProducts))
	g.Go(read(&raw.Orders, "orders", cfg.CSVOrders))
	g.Go(read(&raw.OrderDetails, "order_details", cfg.CSVOrderDetails))

	if err := g.Wait(); err != nil {
		return Raw{}, err
	}
	return raw, nil
}

// Tables returns the datasets as a slice, in dependency order.
func (r Raw) Tables() []Table {
	return []Table{r.Customers, r.Products, r.Orders, r.OrderDetails}
}

func readTable(ctx context.Context, name, path, encoding string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("extract %s: %w", name, err)
	}
	sum := fmt.Sprintf("%016x", xxh3.Hash(data))

	decoded, err := decode(data, encoding)
	if err != nil {
		return Table{}, fmt.Errorf("extract %s: %w", name, err)
	}

	cr := csv.NewReader(bytes.NewReader(decoded))
	cr.FieldsPerRecord = -1 // enforce width against the header ourselves
	cr.LazyQuotes = true    // tolerate unescaped quotes in real-world data
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Table{}, fmt.Errorf("extract %s: read header: %w", name, err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		cols[i] = h
	}

	var rows []records.Record
	for {
		select {
		case <-ctx.Done():
			return Table{}, ctx.Err()
		default:
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("extract %s: %w", name, err)
		}
		row := make(records.Record, len(cols))
		for i, col := range cols {
			if col == "" {
				continue
			}
			if i >= len(rec) {
				row[col] = nil
				continue
			}
			v := strings.TrimSpace(rec[i])
			if v == "" {
				row[col] = nil
				continue
			}
			row[col] = norm.NFC.String(v)
		}
		rows = append(rows, row)
	}

	return Table{Name: name, Path: path, Checksum: sum, Rows: rows}, nil
}

// decode converts the raw bytes to UTF-8 according to the configured input
// encoding. UTF-8 input passes through untouched.
func decode(data []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return data, nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Bytes(data)
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Bytes(data)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}
