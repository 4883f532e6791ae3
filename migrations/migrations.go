// Package migrations embeds the dataset schemas for each SQL back end.
package migrations

import "embed"

//go:embed postgres/*.sql mysql/*.sql clickhouse/*.sql
var FS embed.FS

// InitialSchema is the schema file path for a back end ("postgres", "mysql" or "clickhouse").
func InitialSchema(backend string) string {
	return backend + "/001_initial_schema.sql"
}
