// Package testutil arma fixtures para tests de services y controllers sobre el
// store en memoria. No se importa desde código de producción.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
	jwtx "github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
	"github.com/dropDatabas3/hellopos/internal/store/memory"
)

const Secret = "0123456789abcdef0123456789abcdef"

type Fixture struct {
	DB     *memory.DB
	Codec  *jwtx.Codec
	Hasher *password.Hasher
	Now    time.Time
}

func New(t *testing.T) *Fixture {
	t.Helper()
	f := &Fixture{DB: memory.New(), Now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret: []byte(Secret),
		TTL:    time.Hour,
		Now:    f.Clock,
	})
	require.NoError(t, err)
	f.Codec = codec
	f.Hasher, err = password.NewHasher(password.AlgBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	return f
}

func (f *Fixture) Clock() time.Time { return f.Now }

// User crea un usuario con password "secret".
func (f *Fixture) User(t *testing.T, email string, role types.Role) *repository.User {
	t.Helper()
	hash, err := f.Hasher.Hash("secret")
	require.NoError(t, err)
	u, err := f.DB.Users().Create(context.Background(), repository.CreateUserInput{
		FullName:     email,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		Now:          f.Now,
	})
	require.NoError(t, err)
	return u
}

func (f *Fixture) Store(t *testing.T, owner *repository.User, brand string) *repository.Store {
	t.Helper()
	st, err := f.DB.Stores().Create(context.Background(), repository.CreateStoreInput{
		Brand:   brand,
		OwnerID: owner.ID,
		Status:  types.StorePending,
		Now:     f.Now,
	})
	require.NoError(t, err)
	return st
}

func (f *Fixture) Category(t *testing.T, st *repository.Store, name string) *repository.Category {
	t.Helper()
	c, err := f.DB.Categories().Create(context.Background(), name, st.ID)
	require.NoError(t, err)
	return c
}

// As devuelve un contexto autenticado como u.
func As(u *repository.User) context.Context {
	return principal.With(context.Background(), principal.New(u.Email, u.Role))
}

// Token emite un token para u.
func (f *Fixture) Token(t *testing.T, u *repository.User) string {
	t.Helper()
	tok, _, err := f.Codec.Issue(principal.New(u.Email, u.Role))
	require.NoError(t, err)
	return tok
}

// Denials registra las acciones denegadas.
type Denials struct{ Actions []string }

func (d *Denials) AuthzDenied(action string) { d.Actions = append(d.Actions, action) }
