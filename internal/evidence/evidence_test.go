package evidence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salesetl/internal/storage"
)

type fakeRepo struct {
	storage.Repository
	counts  map[string]int64
	samples map[string][][]any
	columns map[string][]string
	failOn  string
}

func (r *fakeRepo) CountRows(_ context.Context, table string) (int64, error) {
	if table == r.failOn {
		return 0, errors.New("boom")
	}
	return r.counts[table], nil
}

func (r *fakeRepo) SampleRows(_ context.Context, table string, limit int) ([]string, [][]any, error) {
	if table == r.failOn {
		return nil, nil, errors.New("boom")
	}
	rows := r.samples[table]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return r.columns[table], rows, nil
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		counts: map[string]int64{
			"DataSources": 1, "Customers": 2, "Products": 1, "Orders": 1, "OrderDetails": 1,
		},
		columns: map[string][]string{
			"Customers":    {"CustomerID", "FirstName", "Email"},
			"Products":     {"ProductID", "Price"},
			"Orders":       {"OrderID", "OrderDate"},
			"OrderDetails": {"OrderID", "ProductID", "LineTotal"},
		},
		samples: map[string][][]any{
			"Customers": {
				{int64(1), "Ana", "ana@example.com"},
				{int64(2), "Ben", nil},
			},
			"Products":     {{int64(10), 9.5}},
			"Orders":       {{int64(100), "2024-01-02"}},
			"OrderDetails": {{int64(100), int64(10), 47.5}},
		},
	}
}

func TestWriteProducesAllReports(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(context.Background(), newFakeRepo(), dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(paths) != 5 {
		t.Fatalf("wrote %d files, want 5", len(paths))
	}
	for _, name := range []string{
		"counts.txt",
		"select_Customers.txt",
		"select_Products.txt",
		"select_Orders.txt",
		"select_OrderDetails.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing report %s: %v", name, err)
		}
	}
}

func TestCountsReport(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(context.Background(), newFakeRepo(), dir); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "counts.txt"))
	if err != nil {
		t.Fatalf("read counts: %v", err)
	}
	got := string(data)
	for _, line := range []string{"DataSources: 1", "Customers: 2", "OrderDetails: 1"} {
		if !strings.Contains(got, line) {
			t.Errorf("counts.txt missing %q:\n%s", line, got)
		}
	}
}

func TestSampleReportRendersNulls(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(context.Background(), newFakeRepo(), dir); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "select_Customers.txt"))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "CustomerID | FirstName | Email\n") {
		t.Fatalf("sample header wrong:\n%s", got)
	}
	if !strings.Contains(got, "2 | Ben | NULL") {
		t.Fatalf("NULL cell not rendered:\n%s", got)
	}
}

func TestFloatFormatting(t *testing.T) {
	if got := formatValue(47.5); got != "47.5" {
		t.Fatalf("formatValue(47.5) = %q", got)
	}
	if got := formatValue(float64(5)); got != "5" {
		t.Fatalf("formatValue(5.0) = %q", got)
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.failOn = "Orders"
	if _, err := Write(context.Background(), repo, t.TempDir()); err == nil {
		t.Fatal("Write succeeded despite repo failure")
	}
}
