package migrations

import "embed"

// FS SQL-миграции схемы (формат golang-migrate: NNN_name.up.sql / NNN_name.down.sql)
//
//go:embed *.sql
var FS embed.FS
