// Package store arma el conjunto de repositorios según el driver configurado.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/cache"
	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/store/cached"
	"github.com/dropDatabas3/hellopos/internal/store/memory"
	"github.com/dropDatabas3/hellopos/internal/store/pg"
	"github.com/dropDatabas3/hellopos/migrations/postgres"
)

type Config struct {
	Driver   string
	DSN      string
	Postgres struct {
		MaxOpenConns, MinIdleConns int
		ConnMaxLifetime            time.Duration
		AutoMigrate                bool
	}
	// Cache opcional para lecturas de usuarios. nil = sin cache.
	Cache    cache.Client
	CacheTTL time.Duration
}

// Repositories es lo que consumen services, readiness y bootstrap.
type Repositories struct {
	Users      repository.UserRepository
	Stores     repository.StoreRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository

	Ping  func(ctx context.Context) error
	Close func()
	// Pool es nil fuera de postgres.
	Pool *pgxpool.Pool
	// Driver normalizado: memory | postgres.
	Driver string
}

// Open abre el driver y, si corresponde, aplica migraciones pendientes.
func Open(ctx context.Context, cfg Config) (*Repositories, error) {
	var repos *Repositories

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory", "mem":
		db := memory.New()
		repos = &Repositories{
			Users:      db.Users(),
			Stores:     db.Stores(),
			Categories: db.Categories(),
			Products:   db.Products(),
			Ping:       db.Ping,
			Close:      db.Close,
			Driver:     "memory",
		}

	case "postgres", "pg", "postgresql":
		db, err := pg.Open(ctx, cfg.DSN, pg.PoolConfig{
			MaxConns:        cfg.Postgres.MaxOpenConns,
			MinConns:        cfg.Postgres.MinIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			res, err := pg.NewMigrator(postgres.FS, postgres.Dir).Run(ctx, db.Pool())
			if err != nil {
				db.Close()
				return nil, fmt.Errorf("store: migrate: %w", err)
			}
			logger.L().Info("migrations applied",
				logger.Component("store"),
				logger.Count(len(res.Applied)),
				logger.Duration(res.Duration),
			)
		}
		repos = &Repositories{
			Users:      db.Users(),
			Stores:     db.Stores(),
			Categories: db.Categories(),
			Products:   db.Products(),
			Ping:       db.Ping,
			Close:      db.Close,
			Pool:       db.Pool(),
			Driver:     "postgres",
		}

	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if cfg.Cache != nil {
		repos.Users = cached.NewUsers(repos.Users, cfg.Cache, cfg.CacheTTL)
	}
	return repos, nil
}
