// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds every *.up.sql file, applied in file name order
//
//go:embed *.sql
var FS embed.FS
