// Package load persists a transformed batch into the relational store. The
// whole batch goes through one write transaction: first a DataSources row
// recording provenance, then the four entity tables in dependency order, all
// tagged with the generated SourceID. Any failure rolls the transaction back
// and nothing of the run becomes visible.
package load

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"salesetl/internal/ddl"
	"salesetl/internal/extract"
	"salesetl/internal/model"
	"salesetl/internal/schema"
	"salesetl/internal/storage"
	"salesetl/internal/transform"
)

// sourceType is recorded for every batch loaded from CSV files.
const sourceType = "CSV"

// Counts reports what one run wrote.
type Counts struct {
	SourceID     int64
	RunID        string
	Customers    int64
	Products     int64
	Orders       int64
	OrderDetails int64
}

// Total returns the number of entity rows inserted, excluding the
// DataSources row itself.
func (c Counts) Total() int64 {
	return c.Customers + c.Products + c.Orders + c.OrderDetails
}

// Run writes the batch in a single transaction and returns the per-table
// insert counts. sourceName identifies the logical source in the registry.
func Run(ctx context.Context, repo storage.Repository, sourceName string, raw extract.Raw, res transform.Result) (Counts, error) {
	batch, err := repo.Begin(ctx)
	if err != nil {
		return Counts{}, err
	}
	counts, err := runBatch(ctx, batch, sourceName, raw, res)
	if err != nil {
		if rbErr := batch.Rollback(); rbErr != nil {
			log.Printf("load: rollback failed: %v", rbErr)
		}
		return Counts{}, err
	}
	if err := batch.Commit(); err != nil {
		return Counts{}, fmt.Errorf("load: commit: %w", err)
	}
	return counts, nil
}

func runBatch(ctx context.Context, batch storage.Batch, sourceName string, raw extract.Raw, res transform.Result) (Counts, error) {
	counts := Counts{RunID: uuid.NewString()}

	sourceID, err := insertSource(ctx, batch, sourceName, counts.RunID, raw)
	if err != nil {
		return Counts{}, err
	}
	counts.SourceID = sourceID
	log.Printf("load: registered source %q as SourceID=%d run=%s", sourceName, sourceID, counts.RunID)

	counts.Customers, err = insertTable(ctx, batch, schema.Customers, customerRows(res.Customers, sourceID))
	if err != nil {
		return Counts{}, err
	}
	counts.Products, err = insertTable(ctx, batch, schema.Products, productRows(res.Products, sourceID))
	if err != nil {
		return Counts{}, err
	}
	counts.Orders, err = insertTable(ctx, batch, schema.Orders, orderRows(res.Orders, sourceID))
	if err != nil {
		return Counts{}, err
	}
	counts.OrderDetails, err = insertTable(ctx, batch, schema.OrderDetails, lineItemRows(res.LineItems, sourceID))
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// insertSource writes the provenance row and returns its generated SourceID.
// SourcePath and Checksum summarize all four input files.
func insertSource(ctx context.Context, batch storage.Batch, sourceName, runID string, raw extract.Raw) (int64, error) {
	var paths, sums []string
	for _, t := range raw.Tables() {
		paths = append(paths, t.Path)
		sums = append(sums, fmt.Sprintf("%s=%s", t.Name, t.Checksum))
	}
	row := []any{
		sourceName,
		sourceType,
		strings.Join(paths, ", "),
		runID,
		strings.Join(sums, " "),
		time.Now().UTC().Format(time.RFC3339),
	}
	id, err := batch.InsertReturningID(ctx, schema.TableDataSources, schema.DataSources.ColumnNames(), row, "SourceID")
	if err != nil {
		return 0, fmt.Errorf("load: register source: %w", err)
	}
	return id, nil
}

func insertTable(ctx context.Context, batch storage.Batch, table ddl.TableDef, rows [][]any) (int64, error) {
	n, err := batch.InsertRows(ctx, table.Name, table.ColumnNames(), rows)
	if err != nil {
		return n, fmt.Errorf("load: insert %s: %w", table.Name, err)
	}
	log.Printf("load: %s rows=%d", table.Name, n)
	return n, nil
}

// The row builders align values with the schema column order, the entity
// key columns first and SourceID last. Nullable *string fields pass through
// as-is so nil stays NULL in the database.

func customerRows(cs []model.Customer, sourceID int64) [][]any {
	rows := make([][]any, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []any{
			c.CustomerID, c.FirstName, c.LastName,
			nullable(c.Email), nullable(c.Phone), nullable(c.City), nullable(c.Country),
			sourceID,
		})
	}
	return rows
}

func productRows(ps []model.Product, sourceID int64) [][]any {
	rows := make([][]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []any{
			p.ProductID, p.ProductName, p.Category, p.Price, p.Stock, sourceID,
		})
	}
	return rows
}

func orderRows(os []model.Order, sourceID int64) [][]any {
	rows := make([][]any, 0, len(os))
	for _, o := range os {
		rows = append(rows, []any{
			o.OrderID, o.CustomerID, o.OrderDate, nullable(o.Status), sourceID,
		})
	}
	return rows
}

func lineItemRows(lis []model.LineItem, sourceID int64) [][]any {
	rows := make([][]any, 0, len(lis))
	for _, li := range lis {
		rows = append(rows, []any{
			li.OrderID, li.ProductID, li.Quantity, li.UnitPrice, li.LineTotal, sourceID,
		})
	}
	return rows
}

// nullable converts a *string field to a driver-friendly value: nil for
// NULL, the dereferenced string otherwise.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
