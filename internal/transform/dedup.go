package transform

import "salesetl/pkg/records"

// dedupFirst collapses rows sharing the same raw value in the key column,
// keeping the first occurrence in input order. Later duplicates are silently
// dropped. Rows with a missing key pass through; the required-field check of
// each cleaner excludes them afterwards.
func dedupFirst(in []records.Record, key string) []records.Record {
	out := make([]records.Record, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		v := r[key]
		if missing(v) {
			out = append(out, r)
			continue
		}
		k := asString(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
