package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/config"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
	jwtx "github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

const secret = "0123456789abcdef0123456789abcdef"

func execute(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.out = &out
	if c.in == nil {
		c.in = strings.NewReader("")
	}
	root := c.root()
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = "1h"
	cfg.Storage.Driver = "memory"
	cfg.Security.PasswordAlgorithm = password.AlgBcrypt
	cfg.Security.BcryptCost = 4
	return cfg
}

func TestHash(t *testing.T) {
	out, err := execute(t, &cli{}, "hash", "--cost", "4", "hunter22")
	require.NoError(t, err)

	h, err := password.NewHasher(password.AlgBcrypt, 4)
	require.NoError(t, err)
	assert.True(t, h.Verify("hunter22", strings.TrimSpace(out)))

	out, err = execute(t, &cli{readPassword: func() ([]byte, error) { return []byte("from-tty"), nil }},
		"hash", "--alg", "argon2id")
	require.NoError(t, err)
	assert.Contains(t, out, "$argon2id$")
}

func TestTokenInspect(t *testing.T) {
	codec, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(secret), TTL: time.Hour})
	require.NoError(t, err)
	tok, _, err := codec.Issue(principal.New("ana@pos.test", types.RoleCashier))
	require.NoError(t, err)

	out, err := execute(t, &cli{cfg: testConfig()}, "token", "inspect", tok)
	require.NoError(t, err)
	assert.Contains(t, out, `"email": "ana@pos.test"`)
	assert.Contains(t, out, `"authorities": "ROLE_CASHIER"`)

	other, err := jwtx.NewCodec(jwtx.Config{Secret: []byte(strings.Repeat("z", 32)), TTL: time.Hour})
	require.NoError(t, err)
	forged, _, err := other.Issue(principal.New("ana@pos.test", types.RoleCashier))
	require.NoError(t, err)

	_, err = execute(t, &cli{cfg: testConfig()}, "token", "inspect", forged)
	assert.Error(t, err)

	out, err = execute(t, &cli{}, "token", "inspect", "--unverified", forged)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@pos.test")
}

func TestMigrateList(t *testing.T) {
	out, err := execute(t, &cli{}, "migrate", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "0001  init")
}

func TestMigrateNeedsPostgres(t *testing.T) {
	_, err := execute(t, &cli{cfg: testConfig()}, "migrate")
	assert.ErrorContains(t, err, "postgres")
}

func TestAdminCreatePrompts(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	answers := []string{"super-secret-1", "super-secret-1"}
	c := &cli{
		cfg: testConfig(),
		in:  strings.NewReader("root@pos.test\n"),
		readPassword: func() ([]byte, error) {
			a := answers[0]
			answers = answers[1:]
			return []byte(a), nil
		},
	}
	out, err := execute(t, c, "admin", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "admin created")
	assert.Contains(t, out, "email=root@pos.test")
}
