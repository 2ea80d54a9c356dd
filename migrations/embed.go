package migrations

import "embed"

// FS holds the goose migrations of the shop schema.
//
//go:embed *.sql
var FS embed.FS
