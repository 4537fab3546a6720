// Package repository define las entidades del punto de venta y los contratos
// de persistencia que usan los services.
//
// Las implementaciones viven en internal/store/pg (PostgreSQL vía pgx) e
// internal/store/memory (in-process, dev y tests). internal/store/cached decora
// UserRepository con un cache de lecturas.
//
// Convenciones:
//   - Context siempre es el primer parámetro.
//   - "No existe" se reporta con ErrNotFound, unicidad violada con ErrConflict.
//   - Los Update* reciben punteros: nil significa "no tocar".
package repository
