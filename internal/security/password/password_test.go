package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashVerify(t *testing.T) {
	h, err := NewHasher(AlgBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	enc, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$2"))
	assert.True(t, h.Verify("s3cret!", enc))
	assert.False(t, h.Verify("s3cret", enc))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2idHashVerify(t *testing.T) {
	h, err := NewHasher(AlgArgon2id, 0)
	require.NoError(t, err)
	h.Argon2 = Argon2Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

	enc, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=8192,t=1,p=1$"))
	assert.True(t, h.Verify("correct horse", enc))
	assert.False(t, h.Verify("wrong horse", enc))

	// un hasher bcrypt sigue verificando hashes argon2id existentes
	b, err := NewHasher(AlgBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, b.Verify("correct horse", enc))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h, err := NewHasher("", 0)
	require.NoError(t, err)
	for _, enc := range []string{"", "plain", "$argon2id$v=19$m=x$a$b", "$argon2id$v=18$m=1,t=1,p=1$AAAA$AAAA"} {
		assert.False(t, h.Verify("x", enc), enc)
	}
}

func TestNewHasherValidates(t *testing.T) {
	_, err := NewHasher("md5", 0)
	assert.Error(t, err)
	_, err = NewHasher(AlgBcrypt, 99)
	assert.Error(t, err)
}

func TestPolicy(t *testing.T) {
	bl, err := ReadBlacklist(strings.NewReader("# comunes\nPassword1\n123456\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, bl.Len())

	p := Policy{MinLength: 8, RequireDigit: true, Blacklist: bl}

	ok, reasons := p.Validate("abc")
	assert.False(t, ok)
	assert.Equal(t, []string{"too_short", "missing_digit"}, reasons)

	ok, reasons = p.Validate("password1")
	assert.False(t, ok)
	assert.Equal(t, "blacklisted", Describe(reasons))

	ok, _ = p.Validate("tienda-2024")
	assert.True(t, ok)

	ok, reasons = Policy{}.Validate("")
	assert.False(t, ok)
	assert.Equal(t, []string{"empty"}, reasons)
}
