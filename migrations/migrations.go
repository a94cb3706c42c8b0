// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS contains the migration files applied at startup.
//
//go:embed *.sql
var FS embed.FS
