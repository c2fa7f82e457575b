// Package records defines the generic row representation flowing between
// the extract and transform stages.
package records

// Record is a single parsed row keyed by canonical column name. Values are
// either string (a non-empty cell) or nil (an explicitly missing cell);
// downstream coercion replaces strings with typed values where needed.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
