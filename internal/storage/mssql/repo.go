// Package mssql implements the external SQL Server storage backend using
// go-mssqldb. The provenance id is read back via OUTPUT INSERTED since the
// driver does not support LastInsertId.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"salesetl/internal/ddl"
	"salesetl/internal/storage"
)

func init() {
	storage.Register("sqlserver", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
}

// Repository is a SQL Server-backed storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQL Server connection. The DSN is validated early to
// fail fast on obvious mistakes.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if _, err := msdsn.Parse(dsn); err != nil {
		return nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Dialect() ddl.Dialect { return ddl.MSSQLDialect{} }

func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mssql: exec: %w", err)
	}
	return nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Batch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mssql: begin tx: %w", err)
	}
	return &batch{tx: tx}, nil
}

func (r *Repository) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("mssql: count %s: %w", table, err)
	}
	return n, nil
}

func (r *Repository) SampleRows(ctx context.Context, table string, limit int) ([]string, [][]any, error) {
	q := fmt.Sprintf("SELECT TOP %d * FROM %s", limit, quoteIdent(table))
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("mssql: sample %s: %w", table, err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (r *Repository) Close() error { return r.db.Close() }

type batch struct {
	tx *sql.Tx
}

func (b *batch) InsertReturningID(ctx context.Context, table string, columns []string, row []any, idColumn string) (int64, error) {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		placeholders[i] = fmt.Sprintf("@p%d", i+1)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) OUTPUT INSERTED.%s VALUES (%s)",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		quoteIdent(idColumn),
		strings.Join(placeholders, ", "),
	)
	var id int64
	if err := b.tx.QueryRowContext(ctx, q, row...).Scan(&id); err != nil {
		return 0, fmt.Errorf("mssql: insert %s: %w", table, err)
	}
	return id, nil
}

func (b *batch) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	stmt, err := b.tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("mssql: prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return inserted, fmt.Errorf("mssql: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("mssql: insert %s: %w", table, err)
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
		placeholders[i] = fmt.Sprintf("@p%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

func quoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

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
