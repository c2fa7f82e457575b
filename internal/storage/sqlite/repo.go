// Package sqlite implements the embedded-file storage backend using
// database/sql and the pure-Go driver. SQLite has no dedicated bulk-load
// API; prepared inserts inside the run transaction keep performance
// acceptable for batch volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"salesetl/internal/ddl"
	"salesetl/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
}

// Repository is a SQLite-backed storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQLite database. DSN is passed directly to
// database/sql; a plain file path works:
//
//	"sales_analytics.db"
//	"file:sales.db?cache=shared"
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps in-memory databases coherent and avoids
	// writer contention on file databases.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Dialect() ddl.Dialect { return ddl.SQLiteDialect{} }

func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Batch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	return &batch{tx: tx}, nil
}

func (r *Repository) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", table, err)
	}
	return n, nil
}

func (r *Repository) SampleRows(ctx context.Context, table string, limit int) ([]string, [][]any, error) {
	q := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: sample %s: %w", table, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (r *Repository) Close() error { return r.db.Close() }

// batch is one write transaction.
type batch struct {
	tx *sql.Tx
}

func (b *batch) InsertReturningID(ctx context.Context, table string, columns []string, row []any, idColumn string) (int64, error) {
	res, err := b.tx.ExecContext(ctx, insertSQL(table, columns), row...)
	if err != nil {
		return 0, fmt.Errorf("sqlite: insert %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: last insert id: %w", err)
	}
	return id, nil
}

func (b *batch) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	stmt, err := b.tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return inserted, fmt.Errorf("sqlite: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("sqlite: insert %s: %w", table, err)
		}
		inserted++
	}
	return inserted, nil
}

func (b *batch) Commit() error   { return b.tx.Commit() }
func (b *batch) Rollback() error { return b.tx.Rollback() }

func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// scanAll drains rows into generic values alongside the column names.
func scanAll(rows *sql.Rows) ([]string, [][]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		out = append(out, vals)
	}
	return cols, out, rows.Err()
}
