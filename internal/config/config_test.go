package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ConnectionMode != ModeSQLite {
		t.Errorf("ConnectionMode: got %q want %q", cfg.ConnectionMode, ModeSQLite)
	}
	if cfg.SQLiteDB != "sales_analytics.db" {
		t.Errorf("SQLiteDB: got %q", cfg.SQLiteDB)
	}
	if cfg.CSVCustomers != "data/customers.csv" {
		t.Errorf("CSVCustomers: got %q", cfg.CSVCustomers)
	}
	if cfg.EvidenceDir != "evidence" {
		t.Errorf("EvidenceDir: got %q", cfg.EvidenceDir)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CONNECTION_MODE", "postgres")
	t.Setenv("POSTGRES_DSN", "postgresql://localhost/sales")
	t.Setenv("CSV_ORDERS", "/tmp/orders.csv")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ConnectionMode != ModePostgres {
		t.Errorf("ConnectionMode: got %q", cfg.ConnectionMode)
	}
	if cfg.DSN() != "postgresql://localhost/sales" {
		t.Errorf("DSN: got %q", cfg.DSN())
	}
	if cfg.CSVOrders != "/tmp/orders.csv" {
		t.Errorf("CSVOrders: got %q", cfg.CSVOrders)
	}
}

func TestInputPathsOrder(t *testing.T) {
	c := validConfig()
	got := c.InputPaths()
	want := []string{"customers.csv", "products.csv", "orders.csv", "order_details.csv"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path %d: got %q want %q", i, got[i], want[i])
		}
	}
}
