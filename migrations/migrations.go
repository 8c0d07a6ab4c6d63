// Package migrations embeds the goose migrations of the sqlite cache.
// Files are named YYYYMMDDHHMMSS_description.sql and applied in order on Open.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
