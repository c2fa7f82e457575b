// Package storage contains storage-agnostic contracts for the sales ETL and
// a factory registry of concrete backends. The rest of the application
// depends only on the Repository and Batch interfaces; backend packages
// register themselves at init time and are wired in via the storage/all
// package.
package storage

import (
	"context"
	"fmt"
	"sync"

	"salesetl/internal/ddl"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend: "sqlite", "sqlserver", or "postgres".
	Kind string
	// DSN is the backend connection string (a file path for sqlite).
	DSN string
}

// Repository is the minimal surface the pipeline needs from a database:
// DDL execution, a single write transaction per run, and the read-back
// queries used by the evidence stage.
type Repository interface {
	// Dialect reports the SQL dialect for DDL rendering.
	Dialect() ddl.Dialect
	// Exec runs a statement outside any batch transaction (typically DDL).
	Exec(ctx context.Context, stmt string) error
	// Begin opens the write transaction for a batch run.
	Begin(ctx context.Context) (Batch, error)
	// CountRows returns the row count of a table.
	CountRows(ctx context.Context, table string) (int64, error)
	// SampleRows returns up to limit rows of a table along with the column
	// names, for evidence reporting.
	SampleRows(ctx context.Context, table string, limit int) ([]string, [][]any, error)
	// Close releases the underlying connections.
	Close() error
}

// Batch is one write transaction. All inserts of a run go through a single
// Batch and become visible only on Commit; any failure aborts the whole run
// via Rollback. There is no retry.
type Batch interface {
	// InsertReturningID inserts one row and returns the value the database
	// generated for idColumn.
	InsertReturningID(ctx context.Context, table string, columns []string, row []any, idColumn string) (int64, error)
	// InsertRows performs parameterized inserts of all rows, aligned to
	// columns order, and returns the number of rows inserted.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	Commit() error
	Rollback() error
}

// Factory constructs a Repository for a registered kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for the configured kind. Unknown kinds are a
// configuration failure and abort before any processing.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// EnsureSchema renders and applies CREATE TABLE statements for every table,
// in the given order, using the repository's dialect.
func EnsureSchema(ctx context.Context, repo Repository, tables []ddl.TableDef) error {
	d := repo.Dialect()
	for _, t := range tables {
		stmt, err := ddl.BuildCreateTableSQL(d, t)
		if err != nil {
			return fmt.Errorf("storage: render DDL for %s: %w", t.Name, err)
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("storage: create %s: %w", t.Name, err)
		}
	}
	return nil
}
