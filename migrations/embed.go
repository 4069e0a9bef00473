package migrations

import "embed"

// Files holds the forward-only schema migrations, applied in version order on startup.
//
//go:embed *.sql
var Files embed.FS
