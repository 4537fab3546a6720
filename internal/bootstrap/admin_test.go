package bootstrap

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

func TestEnsureAdminIdempotent(t *testing.T) {
	f := testutil.New(t)
	cfg := AdminConfig{
		Users:    f.DB.Users(),
		Hasher:   f.Hasher,
		Email:    "Admin@POS.test",
		Password: "super-secret-1",
		Now:      f.Clock,
	}

	u, res, err := EnsureAdmin(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, Created, res)
	assert.Equal(t, types.RoleAdmin, u.Role)
	assert.Equal(t, "Administrator", u.FullName)
	assert.True(t, f.Hasher.Verify("super-secret-1", u.PasswordHash))

	_, res, err = EnsureAdmin(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, Exists, res)

	all, err := f.DB.Users().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEnsureAdminSkipsAndRefuses(t *testing.T) {
	f := testutil.New(t)

	_, res, err := EnsureAdmin(context.Background(), AdminConfig{Users: f.DB.Users(), Hasher: f.Hasher})
	require.NoError(t, err)
	assert.Equal(t, Skipped, res)

	f.User(t, "cashier@pos.test", types.RoleCashier)
	_, _, err = EnsureAdmin(context.Background(), AdminConfig{
		Users: f.DB.Users(), Hasher: f.Hasher, Email: "cashier@pos.test", Password: "super-secret-1",
	})
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, _, err = EnsureAdmin(context.Background(), AdminConfig{
		Users: f.DB.Users(), Hasher: f.Hasher, Email: "new@pos.test", Password: "short",
	})
	assert.Error(t, err)
}

func TestPromptCredentials(t *testing.T) {
	answers := [][]byte{[]byte("super-secret-1"), []byte("super-secret-1")}
	read := func() ([]byte, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	var out bytes.Buffer
	email, pwd, err := PromptCredentials(strings.NewReader("root@pos.test\n"), &out, read)
	require.NoError(t, err)
	assert.Equal(t, "root@pos.test", email)
	assert.Equal(t, "super-secret-1", pwd)
	assert.Contains(t, out.String(), "Confirm Password")

	mismatch := [][]byte{[]byte("super-secret-1"), []byte("other-secret-2")}
	read = func() ([]byte, error) {
		a := mismatch[0]
		mismatch = mismatch[1:]
		return a, nil
	}
	_, _, err = PromptCredentials(strings.NewReader("root@pos.test\n"), &out, read)
	assert.Error(t, err)
}
