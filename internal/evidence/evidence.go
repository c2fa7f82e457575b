// Package evidence writes the post-load audit reports: a counts.txt with
// the row count of every relation, and a select_<Table>.txt sample of the
// first rows of each entity table. Reports are read back from the store, not
// from in-memory state, so they witness what actually committed.
package evidence

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"salesetl/internal/schema"
	"salesetl/internal/storage"
)

// SampleSize is how many rows each select report includes.
const SampleSize = 5

// Write produces all reports under dir, creating it if needed. It returns
// the paths of the files written.
func Write(ctx context.Context, repo storage.Repository, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("evidence: create dir: %w", err)
	}

	var written []string
	countsPath, err := writeCounts(ctx, repo, dir)
	if err != nil {
		return nil, err
	}
	written = append(written, countsPath)

	for _, t := range schema.EntityTables() {
		p, err := writeSample(ctx, repo, dir, t.Name)
		if err != nil {
			return nil, err
		}
		written = append(written, p)
	}
	return written, nil
}

func writeCounts(ctx context.Context, repo storage.Repository, dir string) (string, error) {
	var b strings.Builder
	for _, t := range schema.Tables() {
		n, err := repo.CountRows(ctx, t.Name)
		if err != nil {
			return "", fmt.Errorf("evidence: count %s: %w", t.Name, err)
		}
		fmt.Fprintf(&b, "%s: %d\n", t.Name, n)
	}
	path := filepath.Join(dir, "counts.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("evidence: write counts: %w", err)
	}
	log.Printf("evidence: wrote %s", path)
	return path, nil
}

func writeSample(ctx context.Context, repo storage.Repository, dir, table string) (string, error) {
	cols, rows, err := repo.SampleRows(ctx, table, SampleSize)
	if err != nil {
		return "", fmt.Errorf("evidence: sample %s: %w", table, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.Join(cols, " | "))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintf(&b, "%s\n", strings.Join(cells, " | "))
	}

	path := filepath.Join(dir, fmt.Sprintf("select_%s.txt", table))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("evidence: write sample %s: %w", table, err)
	}
	log.Printf("evidence: wrote %s (%d rows)", path, len(rows))
	return path, nil
}

// formatValue renders one cell. NULLs print as the literal NULL so a missing
// value is distinguishable from an empty string.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch x := v.(type) {
	case []byte:
		return string(x)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", x), "0"), ".")
	default:
		return fmt.Sprintf("%v", x)
	}
}
