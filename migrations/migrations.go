// Package migrations embeds the PostgreSQL schema used by the postgres store backend.
package migrations

import "embed"

// FS holds the *.up.sql files plus 000_drop_all.sql.
//
//go:embed *.sql
var FS embed.FS
