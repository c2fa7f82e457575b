// Package etl runs the whole batch pipeline: extract the four CSV datasets,
// transform them into cleaned entities, persist them in one transaction, and
// write the evidence reports. One call to Run is one batch.
package etl

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"salesetl/internal/config"
	"salesetl/internal/evidence"
	"salesetl/internal/extract"
	"salesetl/internal/load"
	"salesetl/internal/metrics"
	"salesetl/internal/schema"
	"salesetl/internal/storage"
	"salesetl/internal/transform"
)

// Summary reports what one run did, for logging and the exit message.
type Summary struct {
	RunID    string
	SourceID int64
	Stats    transform.Stats
	Inserted load.Counts
	Evidence []string
	Elapsed  time.Duration
}

// Run executes the pipeline against the configured store. A validation
// failure or any stage error aborts the run; nothing is committed unless
// every insert succeeded.
func Run(ctx context.Context, cfg config.Config) (Summary, error) {
	start := time.Now()

	if issues := config.Validate(cfg); config.HasError(issues) {
		for _, is := range issues {
			log.Printf("config: %s", is)
		}
		return Summary{}, fmt.Errorf("etl: invalid configuration")
	}

	raw, err := stageExtract(ctx, cfg)
	if err != nil {
		return Summary{}, err
	}

	repo, err := openStore(ctx, cfg)
	if err != nil {
		return Summary{}, err
	}
	defer repo.Close()

	res, stats, err := stageTransform(raw)
	if err != nil {
		return Summary{}, err
	}
	recordRowMetrics(stats)

	counts, err := stageLoad(ctx, repo, cfg.SourceName, raw, res)
	if err != nil {
		return Summary{}, err
	}

	reports, err := stageEvidence(ctx, repo, cfg.EvidenceDir)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		RunID:    counts.RunID,
		SourceID: counts.SourceID,
		Stats:    stats,
		Inserted: counts,
		Evidence: reports,
		Elapsed:  time.Since(start),
	}
	log.Printf("etl: run %s done in %s: %d rows inserted (customers=%d products=%d orders=%d order_details=%d)",
		sum.RunID, sum.Elapsed.Round(time.Millisecond), counts.Total(),
		counts.Customers, counts.Products, counts.Orders, counts.OrderDetails)
	return sum, nil
}

func stageExtract(ctx context.Context, cfg config.Config) (extract.Raw, error) {
	t := time.Now()
	raw, err := extract.Datasets(ctx, cfg)
	metrics.RecordStage("extract", err, time.Since(t))
	if err != nil {
		return extract.Raw{}, err
	}
	for _, tb := range raw.Tables() {
		log.Printf("extract: %s rows=%d checksum=%s", tb.Name, len(tb.Rows), tb.Checksum)
		metrics.RecordRows(tb.Name, "read", int64(len(tb.Rows)))
	}
	return raw, nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Repository, error) {
	t := time.Now()
	repo, err := storage.New(ctx, storage.Config{Kind: cfg.ConnectionMode, DSN: cfg.DSN()})
	if err == nil {
		err = storage.EnsureSchema(ctx, repo, schema.Tables())
		if err != nil {
			repo.Close()
		}
	}
	metrics.RecordStage("schema", err, time.Since(t))
	if err != nil {
		return nil, err
	}
	log.Printf("storage: %s ready, schema ensured", cfg.ConnectionMode)
	return repo, nil
}

func stageTransform(raw extract.Raw) (transform.Result, transform.Stats, error) {
	t := time.Now()
	res, stats, err := transform.Apply(transform.Raw{
		Customers:    raw.Customers.Rows,
		Products:     raw.Products.Rows,
		Orders:       raw.Orders.Rows,
		OrderDetails: raw.OrderDetails.Rows,
	})
	metrics.RecordStage("transform", err, time.Since(t))
	if err != nil {
		return transform.Result{}, transform.Stats{}, err
	}
	log.Printf("transform: customers %d/%d products %d/%d orders %d/%d (orphaned %d) line items %d/%d (orphaned %d)",
		stats.CustomersKept, stats.CustomersIn,
		stats.ProductsKept, stats.ProductsIn,
		stats.OrdersKept, stats.OrdersIn, stats.OrdersOrphaned,
		stats.LineItemsKept, stats.LineItemsIn, stats.LineItemsOrphaned)
	return res, stats, nil
}

func stageLoad(ctx context.Context, repo storage.Repository, sourceName string, raw extract.Raw, res transform.Result) (load.Counts, error) {
	t := time.Now()
	counts, err := load.Run(ctx, repo, sourceName, raw, res)
	metrics.RecordStage("load", err, time.Since(t))
	if err != nil {
		return load.Counts{}, err
	}
	metrics.RecordRows(schema.TableCustomers, "inserted", counts.Customers)
	metrics.RecordRows(schema.TableProducts, "inserted", counts.Products)
	metrics.RecordRows(schema.TableOrders, "inserted", counts.Orders)
	metrics.RecordRows(schema.TableOrderDetails, "inserted", counts.OrderDetails)
	return counts, nil
}

func stageEvidence(ctx context.Context, repo storage.Repository, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		log.Printf("evidence: no directory configured, skipping reports")
		return nil, nil
	}
	t := time.Now()
	reports, err := evidence.Write(ctx, repo, dir)
	metrics.RecordStage("evidence", err, time.Since(t))
	return reports, err
}

func recordRowMetrics(s transform.Stats) {
	metrics.RecordRows(schema.TableCustomers, "kept", int64(s.CustomersKept))
	metrics.RecordRows(schema.TableProducts, "kept", int64(s.ProductsKept))
	metrics.RecordRows(schema.TableOrders, "kept", int64(s.OrdersKept))
	metrics.RecordRows(schema.TableOrders, "orphaned", int64(s.OrdersOrphaned))
	metrics.RecordRows(schema.TableOrderDetails, "kept", int64(s.LineItemsKept))
	metrics.RecordRows(schema.TableOrderDetails, "orphaned", int64(s.LineItemsOrphaned))
}
