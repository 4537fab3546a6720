package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dropDatabas3/hellopos/internal/bootstrap"
	"github.com/dropDatabas3/hellopos/internal/config"
	jwtx "github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/store"
	"github.com/dropDatabas3/hellopos/internal/store/pg"
	"github.com/dropDatabas3/hellopos/migrations/postgres"
)

type cli struct {
	configPath string
	cfg        *config.Config
	in         io.Reader
	out        io.Writer
	// readPassword lee sin eco; en tests se reemplaza.
	readPassword bootstrap.PasswordReader
}

func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.LoadOrEnv(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c.cfg = cfg
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	c := &cli{
		in:  os.Stdin,
		out: os.Stdout,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
	return c.root()
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Herramientas operativas del backend POS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "YAML config (falls back to env)")
	root.SetOut(c.out)

	root.AddCommand(c.migrateCmd(), c.adminCmd(), c.tokenCmd(), c.hashCmd())
	return root
}

func (c *cli) migrateCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := pg.NewMigrator(postgres.FS, postgres.Dir)
			if list {
				migs, err := m.Parse()
				if err != nil {
					return err
				}
				for _, mig := range migs {
					fmt.Fprintf(c.out, "%04d  %s\n", mig.Version, mig.Name)
				}
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate needs storage.driver=postgres (got %q)", cfg.Storage.Driver)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			db, err := pg.Open(ctx, cfg.Storage.DSN, pg.PoolConfig{MaxConns: 2})
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := m.Run(ctx, db.Pool())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "applied=%v skipped=%d took=%s\n", res.Applied, len(res.Skipped), res.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Sólo lista las migraciones embebidas")
	return cmd
}

func (c *cli) adminCmd() *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "Gestión del usuario ROLE_ADMIN"}

	var email, name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un ROLE_ADMIN (pide email y password si faltan)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			pwd := os.Getenv("ADMIN_PASSWORD")
			if email == "" || pwd == "" {
				email, pwd, err = bootstrap.PromptCredentials(c.in, c.out, c.readPassword)
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			sc := store.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN}
			sc.Postgres.MaxOpenConns = 2
			repos, err := store.Open(ctx, sc)
			if err != nil {
				return err
			}
			defer repos.Close()

			hasher, err := password.NewHasher(cfg.Security.PasswordAlgorithm, cfg.Security.BcryptCost)
			if err != nil {
				return err
			}
			u, res, err := bootstrap.EnsureAdmin(ctx, bootstrap.AdminConfig{
				Users: repos.Users, Hasher: hasher, Email: email, Password: pwd, FullName: name,
			})
			if err != nil {
				return err
			}
			if res == bootstrap.Created {
				fmt.Fprintf(c.out, "admin created: id=%d email=%s\n", u.ID, u.Email)
			} else {
				fmt.Fprintf(c.out, "admin already exists: %s\n", strings.ToLower(email))
			}
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "Email del admin")
	create.Flags().StringVar(&name, "name", "Administrator", "Nombre completo")
	admin.AddCommand(create)
	return admin
}

func (c *cli) tokenCmd() *cobra.Command {
	tok := &cobra.Command{Use: "token", Short: "Utilidades de JWT"}

	var unverified bool
	inspect := &cobra.Command{
		Use:   "inspect <jwt>",
		Short: "Muestra los claims de un token (verifica firma con jwt.secret)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw := strings.TrimSpace(strings.TrimPrefix(args[0], "Bearer "))

			var claims *jwtx.Claims
			if unverified {
				claims = &jwtx.Claims{}
				if _, _, err := jwtv5.NewParser().ParseUnverified(raw, claims); err != nil {
					return err
				}
			} else {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				codec, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(cfg.JWT.Secret), TTL: cfg.JWTTTL(), Issuer: cfg.JWT.Issuer})
				if err != nil {
					return err
				}
				claims, err = codec.ParseClaims(raw)
				if err != nil {
					if errors.Is(err, jwtx.ErrTokenExpired) {
						return errors.New("token expired (use --unverified to see the claims)")
					}
					return err
				}
			}

			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(claims)
		},
	}
	inspect.Flags().BoolVar(&unverified, "unverified", false, "No verifica firma ni expiración")
	tok.AddCommand(inspect)
	return tok
}

func (c *cli) hashCmd() *cobra.Command {
	var alg string
	var cost int
	cmd := &cobra.Command{
		Use:   "hash [password]",
		Short: "Genera el hash de un password (bcrypt o argon2id)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var plain string
			if len(args) == 1 {
				plain = args[0]
			} else {
				fmt.Fprint(c.out, "Password: ")
				b, err := c.readPassword()
				fmt.Fprintln(c.out)
				if err != nil {
					return err
				}
				plain = string(b)
			}
			if plain == "" {
				return errors.New("empty password")
			}
			h, err := password.NewHasher(alg, cost)
			if err != nil {
				return err
			}
			encoded, err := h.Hash(plain)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, encoded)
			return nil
		},
	}
	cmd.Flags().StringVar(&alg, "alg", password.AlgBcrypt, "bcrypt | argon2id")
	cmd.Flags().IntVar(&cost, "cost", 0, "Costo bcrypt (0 = default)")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
