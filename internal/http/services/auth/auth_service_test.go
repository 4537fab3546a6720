package auth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/auth"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/testutil"
)

type countingTokens struct{ flows []string }

func (c *countingTokens) TokenIssued(flow string) { c.flows = append(c.flows, flow) }

func newService(t *testing.T) (Service, *testutil.Fixture, *countingTokens) {
	t.Helper()
	f := testutil.New(t)
	tokens := &countingTokens{}
	svc := NewService(Deps{
		Users:  f.DB.Users(),
		Hasher: f.Hasher,
		Codec:  f.Codec,
		Tokens: tokens,
		Now:    f.Clock,
	})
	return svc, f, tokens
}

func TestSignupRejectsAdminRoleWithoutCreatingUser(t *testing.T) {
	svc, f, tokens := newService(t)

	res, err := svc.Signup(context.Background(), dto.SignupRequest{
		FullName: "Root", Email: "root@pos.test", Password: "secret", Role: "ROLE_ADMIN",
	})
	require.ErrorIs(t, err, ErrRestrictedRole)
	assert.Nil(t, res)

	users, err := f.DB.Users().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, tokens.flows)
}

func TestSignupReturnsTokenAndUserWithoutPassword(t *testing.T) {
	svc, f, tokens := newService(t)

	res, err := svc.Signup(context.Background(), dto.SignupRequest{
		FullName: "Ana", Email: " Ana@POS.test ", Password: "secret", Role: "ROLE_CASHIER",
	})
	require.NoError(t, err)
	assert.Equal(t, "Register Successfully!", res.Message)
	assert.Equal(t, "ana@pos.test", res.User.Email)
	assert.Equal(t, "ROLE_CASHIER", res.User.Role)
	assert.Equal(t, []string{"signup"}, tokens.flows)

	p, err := f.Codec.Decode(res.JWT)
	require.NoError(t, err)
	assert.Equal(t, "ana@pos.test", p.Identifier)
	assert.Equal(t, types.RoleCashier, p.Role)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2")
}

func TestSignupDefaultsToRoleUser(t *testing.T) {
	svc, _, _ := newService(t)
	res, err := svc.Signup(context.Background(), dto.SignupRequest{
		FullName: "Bob", Email: "bob@pos.test", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ROLE_USER", res.User.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, f, _ := newService(t)
	f.User(t, "ana@pos.test", types.RoleUser)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		FullName: "Ana", Email: "ANA@pos.test", Password: "secret",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newService(t)
	cases := []dto.SignupRequest{
		{FullName: "", Email: "a@pos.test", Password: "x"},
		{FullName: "A", Email: "not-an-email", Password: "x"},
		{FullName: "A", Email: "a@pos.test", Password: ""},
		{FullName: "A", Email: "a@pos.test", Password: "x", Role: "ROLE_WIZARD"},
	}
	for _, in := range cases {
		_, err := svc.Signup(context.Background(), in)
		_, ok := common.AsValidation(err)
		assert.True(t, ok, "expected validation error for %+v, got %v", in, err)
	}
}

func TestSignupPasswordPolicy(t *testing.T) {
	f := testutil.New(t)
	bl, err := password.ReadBlacklist(strings.NewReader("hunter2\n"))
	require.NoError(t, err)
	svc := NewService(Deps{
		Users: f.DB.Users(), Hasher: f.Hasher, Codec: f.Codec,
		Policy: &password.Policy{MinLength: 4, Blacklist: bl},
	})

	_, err = svc.Signup(context.Background(), dto.SignupRequest{FullName: "A", Email: "a@pos.test", Password: "abc"})
	_, ok := common.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{FullName: "A", Email: "a@pos.test", Password: "HUNTER2"})
	_, ok = common.AsValidation(err)
	assert.True(t, ok)
}

func TestLoginWrongPasswordIssuesNoToken(t *testing.T) {
	svc, f, tokens := newService(t)
	f.User(t, "ana@pos.test", types.RoleCashier)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ana@pos.test", Password: "nope"})
	require.ErrorIs(t, err, ErrWrongSecret)
	assert.Nil(t, res)
	assert.Empty(t, tokens.flows)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@pos.test", Password: "x"})
	assert.ErrorIs(t, err, common.ErrUnknownIdentity)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	svc, f, tokens := newService(t)
	u := f.User(t, "ana@pos.test", types.RoleStoreAdmin)
	f.Now = f.Now.Add(2 * time.Hour)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ANA@pos.test", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Login successfully", res.Message)
	assert.Equal(t, []string{"login"}, tokens.flows)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, f.Now.Equal(*res.User.LastLogin))

	stored, err := f.DB.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, f.Now.Equal(*stored.LastLogin))

	p, err := f.Codec.Decode(res.JWT)
	require.NoError(t, err)
	assert.Equal(t, types.RoleStoreAdmin, p.Role)
}
