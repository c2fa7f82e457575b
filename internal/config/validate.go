// This file adds a lightweight validator for Config values. It performs
// static checks over a resolved Config and returns a list of issues (errors
// and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users
	// but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Config.
//
// Path is a dotted path into the config (e.g. "connection_mode",
// "csv.customers"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasError reports whether any issue in the slice is of error severity.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Config. It does not mutate the
// config; callers decide whether to treat warnings as fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	switch c.ConnectionMode {
	case ModeSQLite:
		if strings.TrimSpace(c.SQLiteDB) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "sqlite_db",
				Message:  "sqlite mode requires a non-empty database file path",
			})
		}
	case ModeSQLServer:
		if strings.TrimSpace(c.SQLServerConnStr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "sqlserver_conn_str",
				Message:  "sqlserver mode requires SQLSERVER_CONN_STR",
			})
		}
	case ModePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "postgres_dsn",
				Message:  "postgres mode requires POSTGRES_DSN",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "connection_mode",
			Message:  fmt.Sprintf("unknown connection mode %q; expected sqlite, sqlserver, or postgres", c.ConnectionMode),
		})
	}

	paths := map[string]string{
		"csv.customers":     c.CSVCustomers,
		"csv.products":      c.CSVProducts,
		"csv.orders":        c.CSVOrders,
		"csv.order_details": c.CSVOrderDetails,
	}
	for path, v := range paths {
		if strings.TrimSpace(v) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "input dataset path must not be empty",
			})
		}
	}

	switch strings.ToLower(c.CSVEncoding) {
	case "", "utf-8", "utf8", "windows-1252", "latin-1", "latin1", "iso-8859-1":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "csv_encoding",
			Message:  fmt.Sprintf("unsupported encoding %q; expected utf-8, windows-1252, or latin-1", c.CSVEncoding),
		})
	}

	if strings.TrimSpace(c.SourceName) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source_name",
			Message:  "source name is empty; the source registry row will be unnamed",
		})
	}
	if strings.TrimSpace(c.EvidenceDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "evidence_dir",
			Message:  "evidence directory is empty; evidence reports will be skipped",
		})
	}

	return issues
}
