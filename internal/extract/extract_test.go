package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"salesetl/internal/config"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "customers.csv", []byte(
		"CustomerID,FirstName,LastName,Email\n"+
			"1, Ana ,Diaz,ana@example.com\n"+
			"2,Luis,Gomez,\n"))

	tbl, err := readTable(context.Background(), "customers", path, "utf-8")
	if err != nil {
		t.Fatalf("readTable: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows: %+v", tbl.Rows)
	}
	if got := tbl.Rows[0]["FirstName"]; got != "Ana" {
		t.Errorf("fields should be trimmed, got %q", got)
	}
	if got := tbl.Rows[1]["Email"]; got != nil {
		t.Errorf("empty cell should be nil, got %v", got)
	}
	if tbl.Checksum == "" || len(tbl.Checksum) != 16 {
		t.Errorf("checksum: %q", tbl.Checksum)
	}
}

func TestReadTableBOMAndShortRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "orders.csv", []byte(
		"\ufeffOrderID,CustomerID,OrderDate,Status\n"+
			"100,1,2024-01-02\n")) // Status column missing entirely

	tbl, err := readTable(context.Background(), "orders", path, "utf-8")
	if err != nil {
		t.Fatalf("readTable: %v", err)
	}
	row := tbl.Rows[0]
	if _, ok := row["OrderID"]; !ok {
		t.Fatalf("BOM not stripped from first header: %v", row)
	}
	if row["Status"] != nil {
		t.Errorf("missing trailing cell should be nil, got %v", row["Status"])
	}
}

func TestReadTableLatin1(t *testing.T) {
	dir := t.TempDir()
	// "Álvaro" in ISO-8859-1: 0xC1 is Á.
	path := writeFile(t, dir, "c.csv", append(
		[]byte("CustomerID,FirstName,LastName\n1,"),
		0xC1, 'l', 'v', 'a', 'r', 'o', ',', 'X', '\n'))

	tbl, err := readTable(context.Background(), "customers", path, "latin-1")
	if err != nil {
		t.Fatalf("readTable: %v", err)
	}
	if got := tbl.Rows[0]["FirstName"]; got != "Álvaro" {
		t.Errorf("got %q", got)
	}
}

func TestDatasetsMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CSVCustomers:    writeFile(t, dir, "customers.csv", []byte("CustomerID,FirstName,LastName\n")),
		CSVProducts:     writeFile(t, dir, "products.csv", []byte("ProductID,ProductName,Price\n")),
		CSVOrders:       filepath.Join(dir, "missing.csv"),
		CSVOrderDetails: writeFile(t, dir, "details.csv", []byte("OrderID,ProductID,Quantity\n")),
		CSVEncoding:     "utf-8",
	}
	if _, err := Datasets(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestDatasets(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CSVCustomers:    writeFile(t, dir, "customers.csv", []byte("CustomerID,FirstName,LastName\n1,A,B\n")),
		CSVProducts:     writeFile(t, dir, "products.csv", []byte("ProductID,ProductName,Price\n10,W,9.5\n")),
		CSVOrders:       writeFile(t, dir, "orders.csv", []byte("OrderID,CustomerID,OrderDate\n100,1,2024-01-02\n")),
		CSVOrderDetails: writeFile(t, dir, "details.csv", []byte("OrderID,ProductID,Quantity\n100,10,2\n")),
		CSVEncoding:     "utf-8",
	}
	raw, err := Datasets(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Datasets: %v", err)
	}
	tables := raw.Tables()
	if len(tables) != 4 {
		t.Fatalf("tables: %d", len(tables))
	}
	wantNames := []string{"customers", "products", "orders", "order_details"}
	for i, tbl := range tables {
		if tbl.Name != wantNames[i] {
			t.Errorf("table %d: got %q want %q", i, tbl.Name, wantNames[i])
		}
		if len(tbl.Rows) != 1 {
			t.Errorf("table %q rows: %d", tbl.Name, len(tbl.Rows))
		}
	}
}
