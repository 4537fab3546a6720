// Package server arma el handler HTTP completo a partir de la configuración.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/hellopos/internal/audit"
	"github.com/dropDatabas3/hellopos/internal/cache"
	"github.com/dropDatabas3/hellopos/internal/config"
	authctl "github.com/dropDatabas3/hellopos/internal/http/controllers/auth"
	categoryctl "github.com/dropDatabas3/hellopos/internal/http/controllers/category"
	healthctl "github.com/dropDatabas3/hellopos/internal/http/controllers/health"
	productctl "github.com/dropDatabas3/hellopos/internal/http/controllers/product"
	storectl "github.com/dropDatabas3/hellopos/internal/http/controllers/store"
	userctl "github.com/dropDatabas3/hellopos/internal/http/controllers/user"
	httperrors "github.com/dropDatabas3/hellopos/internal/http/errors"
	mw "github.com/dropDatabas3/hellopos/internal/http/middlewares"
	"github.com/dropDatabas3/hellopos/internal/http/router"
	authsvc "github.com/dropDatabas3/hellopos/internal/http/services/auth"
	categorysvc "github.com/dropDatabas3/hellopos/internal/http/services/category"
	productsvc "github.com/dropDatabas3/hellopos/internal/http/services/product"
	storesvc "github.com/dropDatabas3/hellopos/internal/http/services/store"
	usersvc "github.com/dropDatabas3/hellopos/internal/http/services/user"
	jwtx "github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/metrics"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/rate"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/store"
	"github.com/dropDatabas3/hellopos/internal/util"
)

// App es el resultado de Build.
type App struct {
	Handler http.Handler
	// MetricsHandler es nil cuando /metrics se sirve en Handler.
	MetricsHandler http.Handler
	Metrics        *metrics.Metrics
	Repos          *store.Repositories
	Hasher         *password.Hasher
	Codec          *jwtx.Codec

	closers []func() error
}

// Close libera pool, cache y cliente redis en orden inverso.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build instancia dependencias, services y controllers. version sale en /healthz.
func Build(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	log := logger.L().With(logger.Component("wiring"))
	app := &App{}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}

	httperrors.SetDefault(&httperrors.Responder{AuthzStatus: cfg.Security.AuthzFailureStatus})

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	app.Metrics = m

	// 1. Redis compartido (cache y rate limit)
	var rdb *redis.Client
	if needsRedis(cfg) {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		app.closers = append(app.closers, rdb.Close)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fail(fmt.Errorf("redis ping: %w", err))
		}
	}

	// 2. Cache
	var c cache.Client
	switch strings.ToLower(cfg.Cache.Kind) {
	case "redis":
		c = cache.NewRedis(rdb, cfg.Cache.Redis.Prefix, cfg.CacheTTL())
	case "memory":
		c = cache.NewMemory(cfg.Cache.Redis.Prefix, cfg.CacheTTL())
	}
	if c != nil {
		app.closers = append(app.closers, c.Close)
	}

	// 3. Store
	sc := store.Config{
		Driver:   cfg.Storage.Driver,
		DSN:      cfg.Storage.DSN,
		Cache:    c,
		CacheTTL: cfg.CacheTTL(),
	}
	sc.Postgres.MaxOpenConns = cfg.Storage.Postgres.MaxOpenConns
	sc.Postgres.MinIdleConns = cfg.Storage.Postgres.MinIdleConns
	sc.Postgres.ConnMaxLifetime = cfg.ConnMaxLifetime()
	sc.Postgres.AutoMigrate = cfg.Storage.Postgres.AutoMigrate
	repos, err := store.Open(ctx, sc)
	if err != nil {
		return fail(fmt.Errorf("store %s: %w", util.MaskDSN(sc.DSN), err))
	}
	app.Repos = repos
	app.closers = append(app.closers, func() error { repos.Close(); return nil })
	if err := m.RegisterPool(repos.Pool); err != nil {
		return fail(fmt.Errorf("metrics pool: %w", err))
	}

	// 4. Seguridad
	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    cfg.JWTTTL(),
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return fail(fmt.Errorf("jwt: %w", err))
	}
	app.Codec = codec

	hasher, err := password.NewHasher(cfg.Security.PasswordAlgorithm, cfg.Security.BcryptCost)
	if err != nil {
		return fail(fmt.Errorf("password hasher: %w", err))
	}
	app.Hasher = hasher

	blacklist, err := password.LoadBlacklist(cfg.Security.PasswordBlacklist)
	if err != nil {
		return fail(fmt.Errorf("password blacklist: %w", err))
	}
	policy := &password.Policy{MinLength: cfg.Security.PasswordMinLength, Blacklist: blacklist}

	// 5. Rate limit de /auth
	var limiter rate.Limiter
	if cfg.RateEnabled() {
		if rdb != nil {
			limiter = rate.NewRedisLimiter(rdb, "rl:auth:", cfg.Rate.Auth.Limit, cfg.AuthRateWindow())
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.Auth.Limit, cfg.AuthRateWindow())
		}
	}

	proxies, err := mw.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return fail(fmt.Errorf("trusted proxies: %w", err))
	}

	// 6. Services y controllers
	events := audit.New(m)
	controllers := router.Controllers{
		Auth: authctl.NewController(authsvc.NewService(authsvc.Deps{
			Users:  repos.Users,
			Hasher: hasher,
			Codec:  codec,
			Policy: policy,
			Tokens: events,
		})),
		User: userctl.NewController(usersvc.NewService(usersvc.Deps{Users: repos.Users})),
		Store: storectl.NewController(storesvc.NewService(storesvc.Deps{
			Users:   repos.Users,
			Stores:  repos.Stores,
			Denials: events,
		})),
		Category: categoryctl.NewController(categorysvc.NewService(categorysvc.Deps{
			Users:      repos.Users,
			Stores:     repos.Stores,
			Categories: repos.Categories,
			Denials:    events,
		})),
		Product: productctl.NewController(productsvc.NewService(productsvc.Deps{
			Stores:     repos.Stores,
			Categories: repos.Categories,
			Products:   repos.Products,
		})),
		Health: healthctl.NewController(version, readinessChecks(repos, c)...),
	}

	separateMetrics := strings.TrimSpace(cfg.Server.MetricsAddr) != ""
	app.Handler = router.New(router.Deps{
		Controllers:    controllers,
		Decoder:        codec,
		CORS:           mw.CORSConfig{AllowedOrigins: cfg.Server.CORSAllowedOrigins},
		Metrics:        m,
		Security:       events,
		AuthLimiter:    limiter,
		TrustedProxies: proxies,
		ServeMetrics:   !separateMetrics,
	})
	if separateMetrics {
		app.MetricsHandler = m.Handler()
	}

	log.Info("application wired",
		logger.String("storage", repos.Driver),
		logger.String("cache", cacheKind(cfg)),
		logger.Bool("rate_limit", limiter != nil),
		logger.Int("authz_status", httperrors.Default().AuthzStatus),
	)
	return app, nil
}

func needsRedis(cfg *config.Config) bool {
	return strings.EqualFold(cfg.Cache.Kind, "redis")
}

func cacheKind(cfg *config.Config) string {
	if cfg.Cache.Kind == "" {
		return "none"
	}
	return strings.ToLower(cfg.Cache.Kind)
}

func readinessChecks(repos *store.Repositories, c cache.Client) []healthctl.Check {
	checks := []healthctl.Check{{Name: "store", Ping: repos.Ping}}
	if c != nil {
		checks = append(checks, healthctl.Check{Name: "cache", Ping: c.Ping})
	}
	return checks
}
