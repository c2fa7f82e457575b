// Package config defines the runtime configuration for the sales ETL.
//
// Configuration is resolved from the environment with documented defaults so
// a local run needs no setup beyond the input files. All knobs are explicit
// fields on Config; there is no process-wide mutable state.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Connection modes recognized by the storage layer.
const (
	ModeSQLite    = "sqlite"    // embedded file database
	ModeSQLServer = "sqlserver" // external SQL Server
	ModePostgres  = "postgres"  // external Postgres
)

// Config holds everything a single batch run needs: where the four input
// datasets live, which database to load into, and where evidence goes.
type Config struct {
	// ConnectionMode selects the storage backend: "sqlite", "sqlserver",
	// or "postgres".
	ConnectionMode string `envconfig:"CONNECTION_MODE" default:"sqlite"`

	// SQLiteDB is the database file path used in sqlite mode.
	SQLiteDB string `envconfig:"SQLITE_DB" default:"sales_analytics.db"`

	// SQLServerConnStr is the connection string used in sqlserver mode.
	// Required when ConnectionMode is "sqlserver".
	SQLServerConnStr string `envconfig:"SQLSERVER_CONN_STR"`

	// PostgresDSN is the pgx connection string used in postgres mode.
	// Required when ConnectionMode is "postgres".
	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	// Paths to the four input datasets (delimited text, one header row).
	CSVCustomers    string `envconfig:"CSV_CUSTOMERS" default:"data/customers.csv"`
	CSVProducts     string `envconfig:"CSV_PRODUCTS" default:"data/products.csv"`
	CSVOrders       string `envconfig:"CSV_ORDERS" default:"data/orders.csv"`
	CSVOrderDetails string `envconfig:"CSV_ORDER_DETAILS" default:"data/order_details.csv"`

	// CSVEncoding is the input character encoding: "utf-8" (default),
	// "windows-1252", or "latin-1".
	CSVEncoding string `envconfig:"CSV_ENCODING" default:"utf-8"`

	// SourceName is recorded in the source registry for provenance.
	SourceName string `envconfig:"SOURCE_NAME" default:"sales_csv"`

	// EvidenceDir is where post-load audit reports are written.
	EvidenceDir string `envconfig:"EVIDENCE_DIR" default:"evidence"`
}

// FromEnv resolves a Config from the process environment, applying defaults
// for unset variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the connection string for the selected mode. For sqlite mode
// the database file path doubles as the DSN.
func (c Config) DSN() string {
	switch c.ConnectionMode {
	case ModeSQLServer:
		return c.SQLServerConnStr
	case ModePostgres:
		return c.PostgresDSN
	default:
		return c.SQLiteDB
	}
}

// InputPaths returns the four dataset paths in load order.
func (c Config) InputPaths() []string {
	return []string{c.CSVCustomers, c.CSVProducts, c.CSVOrders, c.CSVOrderDetails}
}
