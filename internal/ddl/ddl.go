// Package ddl models relational table definitions in a backend-neutral way
// and renders CREATE TABLE statements per dialect. Columns carry logical
// kinds; each dialect maps kinds to its own SQL types and identifier
// quoting.
package ddl

// Logical column kinds understood by the dialects.
const (
	KindIdentity  = "identity" // auto-generated integer primary key
	KindBigInt    = "bigint"
	KindText      = "text"
	KindReal      = "real"
	KindDate      = "date"
	KindTimestamp = "timestamp"
)

// ColumnDef describes a single column. Name is unquoted; quoting happens at
// render time. A KindIdentity column is always the table's primary key and
// must not be combined with PrimaryKey on other columns.
type ColumnDef struct {
	Name       string
	Kind       string
	Nullable   bool
	PrimaryKey bool
}

// ForeignKey declares a reference from this table's columns to another
// table's columns.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

// TableDef holds a table name and an ordered list of columns plus any
// foreign keys.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in definition order, excluding the
// identity column (the database populates it).
func (t TableDef) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Kind == KindIdentity {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}
