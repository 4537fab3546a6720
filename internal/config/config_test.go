package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: "+secret+"\n")
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "memory", c.Cache.Kind)
	assert.Equal(t, 24*time.Hour, c.JWTTTL())
	assert.Equal(t, 401, c.Security.AuthzFailureStatus)
	assert.Equal(t, []string{"https://localhost:5173"}, c.Server.CORSAllowedOrigins)
	assert.Equal(t, time.Minute, c.AuthRateWindow())
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeYAML(t, `
server:
  addr: ":9000"
jwt:
  secret: `+secret+`
  ttl: 1h
`)
	t.Setenv("SERVER_ADDR", ":7000")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("SECURITY_AUTHZ_FAILURE_STATUS", "403")
	t.Setenv("SERVER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, 15*time.Minute, c.JWTTTL())
	assert.Equal(t, 403, c.Security.AuthzFailureStatus)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Server.CORSAllowedOrigins)
}

func TestValidateErrors(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: postgres
cache:
  kind: redis
jwt:
  secret: short
  ttl: forever
security:
  authz_failure_status: 418
`)
	_, err := Load(p)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"jwt.secret", "jwt.ttl", "storage.dsn", "cache.redis.addr", "authz_failure_status"} {
		assert.Contains(t, msg, want)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("STORAGE_DRIVER", "PG")
	t.Setenv("STORAGE_DSN", "postgres://pos@localhost/pos")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "changeme")

	c, err := LoadOrEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.True(t, c.RateEnabled())
	assert.Equal(t, "root@example.com", c.Bootstrap.AdminEmail)
}

func TestTrustedProxies(t *testing.T) {
	p := writeYAML(t, `
server:
  trusted_proxies: ["10.0.0.0/8", "192.168.1.10"]
jwt:
  secret: `+secret+`
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, c.Server.TrustedProxies)

	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.1, not-a-proxy")
	_, err = Load(p)
	assert.ErrorContains(t, err, "server.trusted_proxies")
}
