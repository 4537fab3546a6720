package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/hellopos/internal/bootstrap"
	"github.com/dropDatabas3/hellopos/internal/config"
	"github.com/dropDatabas3/hellopos/internal/http/server"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

// version se pisa con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hellopos: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", envOr("CONFIG_PATH", "configs/config.yaml"), "YAML config path (falls back to env)")
		envFile    = flag.String("env-file", ".env", "dotenv file loaded before reading config")
	)
	flag.Parse()

	// .env es opcional; el entorno real tiene prioridad.
	_ = godotenv.Load(*envFile)

	cfg, err := config.LoadOrEnv(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "hellopos",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Build(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("cleanup failed", logger.Err(err))
		}
	}()

	if cfg.Bootstrap.AdminEmail != "" {
		_, res, err := bootstrap.EnsureAdmin(ctx, bootstrap.AdminConfig{
			Users:    app.Repos.Users,
			Hasher:   app.Hasher,
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
			FullName: cfg.Bootstrap.AdminFullName,
		})
		if err != nil {
			log.Warn("admin bootstrap failed; use `posctl admin create`", logger.Err(err))
		} else if res == bootstrap.Created {
			log.Info("admin bootstrap done", logger.Email(cfg.Bootstrap.AdminEmail))
		}
	}

	servers := []*http.Server{{
		Addr:              cfg.Server.Addr,
		Handler:           app.Handler,
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout(),
	}}
	if app.MetricsHandler != nil {
		servers = append(servers, &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           app.MetricsHandler,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Info("listening", logger.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", logger.Duration(cfg.ShutdownTimeout()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
