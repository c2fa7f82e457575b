// Package all wires in every storage backend via blank imports. Importing
// it from the binary makes each backend register itself with the storage
// factory.
package all

import (
	_ "salesetl/internal/storage/mssql"
	_ "salesetl/internal/storage/postgres"
	_ "salesetl/internal/storage/sqlite"
)
