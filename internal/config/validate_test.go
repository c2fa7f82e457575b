package config

import "testing"

func validConfig() Config {
	return Config{
		ConnectionMode:  ModeSQLite,
		SQLiteDB:        "sales.db",
		CSVCustomers:    "customers.csv",
		CSVProducts:     "products.csv",
		CSVOrders:       "orders.csv",
		CSVOrderDetails: "order_details.csv",
		CSVEncoding:     "utf-8",
		SourceName:      "sales_csv",
		EvidenceDir:     "evidence",
	}
}

func TestValidateOK(t *testing.T) {
	issues := Validate(validConfig())
	if HasError(issues) {
		t.Fatalf("unexpected errors: %v", issues)
	}
}

func TestValidateUnknownMode(t *testing.T) {
	c := validConfig()
	c.ConnectionMode = "oracle"
	issues := Validate(c)
	if !HasError(issues) {
		t.Fatalf("expected error for unknown mode, got %v", issues)
	}
	found := false
	for _, iss := range issues {
		if iss.Path == "connection_mode" && iss.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("no connection_mode error in %v", issues)
	}
}

func TestValidateMissingConnStr(t *testing.T) {
	c := validConfig()
	c.ConnectionMode = ModeSQLServer
	c.SQLServerConnStr = ""
	if issues := Validate(c); !HasError(issues) {
		t.Fatalf("expected error for missing conn string, got %v", issues)
	}

	c = validConfig()
	c.ConnectionMode = ModePostgres
	c.PostgresDSN = ""
	if issues := Validate(c); !HasError(issues) {
		t.Fatalf("expected error for missing postgres dsn, got %v", issues)
	}
}

func TestValidateEmptyPath(t *testing.T) {
	c := validConfig()
	c.CSVOrders = ""
	if issues := Validate(c); !HasError(issues) {
		t.Fatalf("expected error for empty orders path, got %v", issues)
	}
}

func TestValidateBadEncoding(t *testing.T) {
	c := validConfig()
	c.CSVEncoding = "koi8-r"
	if issues := Validate(c); !HasError(issues) {
		t.Fatalf("expected error for unsupported encoding, got %v", issues)
	}
}

func TestValidateWarningsAreNotErrors(t *testing.T) {
	c := validConfig()
	c.SourceName = ""
	c.EvidenceDir = ""
	issues := Validate(c)
	if HasError(issues) {
		t.Fatalf("warnings should not be errors: %v", issues)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 warnings, got %v", issues)
	}
}

func TestDSNFollowsMode(t *testing.T) {
	c := validConfig()
	c.SQLServerConnStr = "server=localhost"
	c.PostgresDSN = "postgresql://localhost/sales"

	if got := c.DSN(); got != "sales.db" {
		t.Fatalf("sqlite DSN: got %q", got)
	}
	c.ConnectionMode = ModeSQLServer
	if got := c.DSN(); got != "server=localhost" {
		t.Fatalf("sqlserver DSN: got %q", got)
	}
	c.ConnectionMode = ModePostgres
	if got := c.DSN(); got != "postgresql://localhost/sales" {
		t.Fatalf("postgres DSN: got %q", got)
	}
}
