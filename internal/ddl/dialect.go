package ddl

import "strings"

// Dialect renders backend-specific SQL fragments. Implementations stay
// conservative and biased toward widely-supported choices.
type Dialect interface {
	// Name is the storage kind the dialect serves ("sqlite", "mssql",
	// "postgres").
	Name() string
	// QuoteIdent quotes a single identifier.
	QuoteIdent(name string) string
	// TypeFor maps a logical column kind to a SQL type.
	TypeFor(kind string) string
	// IdentityColumn renders the full column clause for an auto-generated
	// integer primary key.
	IdentityColumn(name string) string
	// SupportsIfNotExists reports whether CREATE TABLE IF NOT EXISTS is
	// available; otherwise the builder wraps the statement in an existence
	// guard.
	SupportsIfNotExists() bool
}

// SQLiteDialect renders SQLite DDL with double-quoted identifiers.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (SQLiteDialect) TypeFor(kind string) string {
	switch kind {
	case KindBigInt:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindDate, KindTimestamp, KindText:
		return "TEXT"
	default:
		return "TEXT"
	}
}

func (d SQLiteDialect) IdentityColumn(name string) string {
	return d.QuoteIdent(name) + " INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (SQLiteDialect) SupportsIfNotExists() bool { return true }

// MSSQLDialect renders T-SQL with bracket-quoted identifiers.
type MSSQLDialect struct{}

func (MSSQLDialect) Name() string { return "mssql" }

func (MSSQLDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (MSSQLDialect) TypeFor(kind string) string {
	switch kind {
	case KindBigInt:
		return "BIGINT"
	case KindReal:
		return "FLOAT"
	case KindDate:
		return "DATE"
	case KindTimestamp:
		return "DATETIME2"
	default:
		return "NVARCHAR(255)"
	}
}

func (d MSSQLDialect) IdentityColumn(name string) string {
	return d.QuoteIdent(name) + " BIGINT IDENTITY(1,1) PRIMARY KEY"
}

func (MSSQLDialect) SupportsIfNotExists() bool { return false }

// PostgresDialect renders Postgres DDL with double-quoted identifiers.
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (PostgresDialect) TypeFor(kind string) string {
	switch kind {
	case KindBigInt:
		return "BIGINT"
	case KindReal:
		return "DOUBLE PRECISION"
	case KindDate:
		return "DATE"
	case KindTimestamp:
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}

func (d PostgresDialect) IdentityColumn(name string) string {
	return d.QuoteIdent(name) + " BIGSERIAL PRIMARY KEY"
}

func (PostgresDialect) SupportsIfNotExists() bool { return true }
