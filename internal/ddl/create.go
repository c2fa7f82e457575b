package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement for the given
// dialect. The statement has the form:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "col1" TYPE [NOT NULL],
//	  "col2" TYPE,
//	  PRIMARY KEY ("pk1", "pk2"),
//	  FOREIGN KEY ("fk") REFERENCES "parent" ("col")
//	);
//
// Dialects without IF NOT EXISTS (SQL Server) get an OBJECT_ID existence
// guard instead.
func BuildCreateTableSQL(d Dialect, t TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s has no columns", name)
	}

	cols := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", name)
		}
		if c.Kind == KindIdentity {
			cols = append(cols, d.IdentityColumn(c.Name))
			continue
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(d.TypeFor(c.Kind))
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, d.QuoteIdent(c.Name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) == 0 || len(fk.Columns) != len(fk.RefColumns) {
			return "", fmt.Errorf("ddl: malformed foreign key on table %s", name)
		}
		cols = append(cols, fmt.Sprintf(
			"FOREIGN KEY (%s) REFERENCES %s (%s)",
			joinQuoted(d, fk.Columns),
			d.QuoteIdent(fk.RefTable),
			joinQuoted(d, fk.RefColumns),
		))
	}

	create := fmt.Sprintf("CREATE TABLE %s (\n  %s\n)",
		d.QuoteIdent(name), strings.Join(cols, ",\n  "))

	if d.SupportsIfNotExists() {
		create = strings.Replace(create, "CREATE TABLE ", "CREATE TABLE IF NOT EXISTS ", 1)
		return create + ";", nil
	}
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n%s;\nEND",
		name, create,
	), nil
}

func joinQuoted(d Dialect, names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = d.QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
