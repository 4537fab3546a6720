// Package postgres embebe las migraciones SQL de Postgres.
package postgres

import "embed"

// FS contiene las migraciones con formato {version}_{name}.sql.
//
//go:embed *.sql
var FS embed.FS

// Dir es el directorio dentro de FS donde viven las migraciones.
const Dir = "."
