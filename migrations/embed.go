// Package migrations expone los scripts SQL del esquema para golang-migrate.
package migrations

import "embed"

// FS contiene los pares NNN_nombre.up.sql / NNN_nombre.down.sql.
//
//go:embed *.sql
var FS embed.FS
