// Package pg implementa los repositorios sobre PostgreSQL con pgx/pgxpool.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

type PoolConfig struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// DB agrupa el pool y los repositorios que lo usan.
type DB struct{ pool *pgxpool.Pool }

// Open crea el pool y hace un ping. Si el ping falla devuelve el error: sin
// base no hay servicio que ofrecer.
func Open(ctx context.Context, dsn string, cfg PoolConfig) (*DB, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	logger.L().Info("postgres connected",
		logger.Component("pg"),
		logger.Int("max_conns", int(pcfg.MaxConns)),
	)
	return &DB{pool: pool}, nil
}

func (db *DB) Pool() *pgxpool.Pool            { return db.pool }
func (db *DB) Ping(ctx context.Context) error { return db.pool.Ping(ctx) }
func (db *DB) Close()                         { db.pool.Close() }
func (db *DB) Users() *Users                  { return &Users{pool: db.pool} }
func (db *DB) Stores() *Stores                { return &Stores{pool: db.pool} }
func (db *DB) Categories() *Categories        { return &Categories{pool: db.pool} }
func (db *DB) Products() *Products            { return &Products{pool: db.pool} }

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// mapErr traduce errores de pgx a los de repository.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation, codeCheckViolation:
			return fmt.Errorf("%w: %s", repository.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return err
}

// nowOr devuelve t o el reloj actual si t es cero.
func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
