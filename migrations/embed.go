// Package migrations embeds the goose migrations for every supported store driver.
package migrations

import "embed"

// FS holds postgres/*.sql and sqlite/*.sql
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Directories inside FS, one per driver
const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)
