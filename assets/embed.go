// Package assets embeds the default animal catalog and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed animals.txt migrations/*.sql
var FS embed.FS

// MigrationsDir is the directory inside FS that holds goose migrations.
const MigrationsDir = "migrations"

// Animals opens the embedded default catalog.
func Animals() (fs.File, error) {
	return FS.Open("animals.txt")
}
