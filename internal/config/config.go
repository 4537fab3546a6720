// Package config carga la configuración del servicio desde YAML y variables de
// entorno. El entorno pisa al archivo; sin archivo se usa sólo el entorno.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod | test
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
		// MetricsAddr vacío sirve /metrics en el listener principal.
		MetricsAddr string `yaml:"metrics_addr"`
		// TrustedProxies (IPs o CIDRs) cuyo X-Forwarded-For se acepta. Vacío = sólo RemoteAddr.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`

	Storage struct {
		// memory | postgres
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MinIdleConns    int    `yaml:"min_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
			// AutoMigrate aplica migraciones pendientes al arrancar.
			AutoMigrate bool `yaml:"auto_migrate"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis | none
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`

	Security struct {
		// AuthzFailureStatus: 401 (default) o 403 para fallas de autorización.
		AuthzFailureStatus int    `yaml:"authz_failure_status"`
		PasswordAlgorithm  string `yaml:"password_algorithm"`
		BcryptCost         int    `yaml:"bcrypt_cost"`
		PasswordMinLength  int    `yaml:"password_min_length"`
		PasswordBlacklist  string `yaml:"password_blacklist_path"`
	} `yaml:"security"`

	Rate struct {
		// Enabled nil = true.
		Enabled *bool `yaml:"enabled"`
		Auth    struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"auth"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Bootstrap struct {
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `yaml:"admin_password"`
		AdminFullName string `yaml:"admin_full_name"`
	} `yaml:"bootstrap"`
}

// Load lee path, aplica defaults y overrides de entorno, y valida.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return finish(&c)
}

// FromEnv arma la configuración sólo desde variables de entorno.
func FromEnv() (*Config, error) {
	var c Config
	return finish(&c)
}

// LoadOrEnv usa path si existe; si no, el entorno.
func LoadOrEnv(path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return FromEnv()
}

func finish(c *Config) (*Config, error) {
	c.applyDefaults()
	c.applyEnvOverrides()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.CORSAllowedOrigins == nil {
		c.Server.CORSAllowedOrigins = []string{"https://localhost:5173"}
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = 20
	}
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		c.Storage.Postgres.ConnMaxLifetime = "30m"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "pos"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "24h"
	}
	if c.Security.AuthzFailureStatus == 0 {
		c.Security.AuthzFailureStatus = http.StatusUnauthorized
	}
	if c.Security.PasswordAlgorithm == "" {
		c.Security.PasswordAlgorithm = "bcrypt"
	}
	if c.Rate.Enabled == nil {
		on := true
		c.Rate.Enabled = &on
	}
	if c.Rate.Auth.Limit == 0 {
		c.Rate.Auth.Limit = 20
	}
	if c.Rate.Auth.Window == "" {
		c.Rate.Auth.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Bootstrap.AdminFullName == "" {
		c.Bootstrap.AdminFullName = "Administrator"
	}
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	s, ok := getEnvStr(key)
	if !ok {
		return nil, false
	}
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, true
}

// applyEnvOverrides pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("SERVER_METRICS_ADDR"); ok {
		c.Server.MetricsAddr = v
	}
	if v, ok := getEnvCSV("SERVER_TRUSTED_PROXIES"); ok {
		c.Server.TrustedProxies = v
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("STORAGE_PG_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvBool("STORAGE_PG_AUTO_MIGRATE"); ok {
		c.Storage.Postgres.AutoMigrate = v
	}

	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}

	if v, ok := getEnvInt("SECURITY_AUTHZ_FAILURE_STATUS"); ok {
		c.Security.AuthzFailureStatus = v
	}
	if v, ok := getEnvStr("SECURITY_PASSWORD_ALGORITHM"); ok {
		c.Security.PasswordAlgorithm = strings.ToLower(v)
	}
	if v, ok := getEnvInt("SECURITY_BCRYPT_COST"); ok {
		c.Security.BcryptCost = v
	}
	if v, ok := getEnvInt("SECURITY_PASSWORD_MIN_LENGTH"); ok {
		c.Security.PasswordMinLength = v
	}
	if v, ok := getEnvStr("SECURITY_PASSWORD_BLACKLIST_PATH"); ok {
		c.Security.PasswordBlacklist = v
	}

	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = &v
	}
	if v, ok := getEnvInt("RATE_AUTH_LIMIT"); ok {
		c.Rate.Auth.Limit = v
	}
	if v, ok := getEnvStr("RATE_AUTH_WINDOW"); ok {
		c.Rate.Auth.Window = v
	}

	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := getEnvStr("ADMIN_EMAIL"); ok {
		c.Bootstrap.AdminEmail = v
	}
	if v, ok := getEnvStr("ADMIN_PASSWORD"); ok {
		c.Bootstrap.AdminPassword = v
	}
	if v, ok := getEnvStr("ADMIN_FULL_NAME"); ok {
		c.Bootstrap.AdminFullName = v
	}
}

// Validate revisa valores críticos. Los errores se acumulan para verlos todos juntos.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	for name, v := range map[string]string{
		"server.read_timeout":                c.Server.ReadTimeout,
		"server.write_timeout":               c.Server.WriteTimeout,
		"server.shutdown_timeout":            c.Server.ShutdownTimeout,
		"storage.postgres.conn_max_lifetime": c.Storage.Postgres.ConnMaxLifetime,
		"cache.memory.default_ttl":           c.Cache.Memory.DefaultTTL,
		"jwt.ttl":                            c.JWT.TTL,
		"rate.auth.window":                   c.Rate.Auth.Window,
	} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			add("%s: invalid duration %q", name, v)
		}
	}

	for _, p := range c.Server.TrustedProxies {
		if !validProxy(p) {
			add("server.trusted_proxies: invalid IP or CIDR %q", p)
		}
	}

	if len(c.JWT.Secret) < 32 {
		add("jwt.secret: must be at least 32 bytes (set JWT_SECRET)")
	}

	switch c.Storage.Driver {
	case "memory":
	case "postgres", "pg":
		c.Storage.Driver = "postgres"
		if c.Storage.DSN == "" {
			add("storage.dsn: required for postgres")
		}
	default:
		add("storage.driver: unknown %q", c.Storage.Driver)
	}

	switch c.Cache.Kind {
	case "memory", "none":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			add("cache.redis.addr: required for redis")
		}
	default:
		add("cache.kind: unknown %q", c.Cache.Kind)
	}

	if s := c.Security.AuthzFailureStatus; s != http.StatusUnauthorized && s != http.StatusForbidden {
		add("security.authz_failure_status: must be 401 or 403, got %d", s)
	}
	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		add("bootstrap: admin_email and admin_password go together")
	}
	return errors.Join(errs...)
}

func validProxy(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}

func mustDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// Duraciones ya validadas por Validate.

func (c *Config) ReadTimeout() time.Duration     { return mustDur(c.Server.ReadTimeout) }
func (c *Config) WriteTimeout() time.Duration    { return mustDur(c.Server.WriteTimeout) }
func (c *Config) ShutdownTimeout() time.Duration { return mustDur(c.Server.ShutdownTimeout) }
func (c *Config) ConnMaxLifetime() time.Duration { return mustDur(c.Storage.Postgres.ConnMaxLifetime) }
func (c *Config) CacheTTL() time.Duration        { return mustDur(c.Cache.Memory.DefaultTTL) }
func (c *Config) JWTTTL() time.Duration          { return mustDur(c.JWT.TTL) }
func (c *Config) AuthRateWindow() time.Duration  { return mustDur(c.Rate.Auth.Window) }

func (c *Config) RateEnabled() bool { return c.Rate.Enabled == nil || *c.Rate.Enabled }
