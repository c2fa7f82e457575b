// Package postgres implements the external Postgres storage backend using
// pgx v5 and a connection pool.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesetl/internal/ddl"
	"salesetl/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
}

// Repository is a Postgres-backed storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a pgx pool for the given DSN and verifies
// connectivity.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Dialect() ddl.Dialect { return ddl.PostgresDialect{} }

func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Batch, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin tx: %w", err)
	}
	return &batch{ctx: ctx, tx: tx}, nil
}

func (r *Repository) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := r.pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", table, err)
	}
	return n, nil
}

func (r *Repository) SampleRows(ctx context.Context, table string, limit int) ([]string, [][]any, error) {
	q := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit)
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: sample %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for _, fd := range rows.FieldDescriptions() {
		cols = append(cols, fd.Name)
	}
	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: sample %s: %w", table, err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("postgres: sample %s: %w", table, err)
	}
	return cols, out, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// batch is one write transaction. The opening context is retained for
// Commit/Rollback, matching the storage.Batch contract.
type batch struct {
	ctx context.Context
	tx  pgx.Tx
}

func (b *batch) InsertReturningID(ctx context.Context, table string, columns []string, row []any, idColumn string) (int64, error) {
	q := fmt.Sprintf(
		"%s RETURNING %s",
		insertSQL(table, columns),
		quoteIdent(idColumn),
	)
	var id int64
	if err := b.tx.QueryRow(ctx, q, row...).Scan(&id); err != nil {
		return 0, fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	return id, nil
}

func (b *batch) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	q := insertSQL(table, columns)
	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return inserted, fmt.Errorf("postgres: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := b.tx.Exec(ctx, q, row...); err != nil {
			return inserted, fmt.Errorf("postgres: insert %s: %w", table, err)
		}
		inserted++
	}
	return inserted, nil
}

func (b *batch) Commit() error   { return b.tx.Commit(b.ctx) }
func (b *batch) Rollback() error { return b.tx.Rollback(b.ctx) }

func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
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
