// Package migrations holds the goose schema migrations for each supported dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
