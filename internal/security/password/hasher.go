// Package password hashea y verifica contraseñas y aplica la política de alta.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgBcrypt   = "bcrypt"
	AlgArgon2id = "argon2id"
)

var ErrEmptyPassword = errors.New("empty password")

// Argon2Params para hashes argon2id (formato PHC).
type Argon2Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	KeyLen      uint32
}

var DefaultArgon2 = Argon2Params{Memory: 64 * 1024, Time: 3, Parallelism: 1, KeyLen: 32}

// Hasher genera hashes con Algorithm y verifica cualquiera de los dos formatos,
// así se puede migrar de algoritmo sin invalidar cuentas existentes.
type Hasher struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2Params
}

// NewHasher con defaults: bcrypt, costo bcrypt.DefaultCost.
func NewHasher(alg string, bcryptCost int) (*Hasher, error) {
	switch alg {
	case "":
		alg = AlgBcrypt
	case AlgBcrypt, AlgArgon2id:
	default:
		return nil, fmt.Errorf("unknown password algorithm %q", alg)
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
	}
	return &Hasher{Algorithm: alg, BcryptCost: bcryptCost, Argon2: DefaultArgon2}, nil
}

func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	if h.Algorithm == AlgArgon2id {
		return hashArgon2id(h.Argon2, plain)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara plain contra encoded (bcrypt $2a/$2b/$2y o PHC argon2id).
// Un hash con formato desconocido nunca verifica.
func (h *Hasher) Verify(plain, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2id(plain, encoded)
	default:
		return false
	}
}

// $argon2id$v=19$m=...,t=...,p=...$<saltB64>$<dkB64>
func hashArgon2id(p Argon2Params, plain string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	dk := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(dk),
	), nil
}

func verifyArgon2id(plain, phc string) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, dk
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return false
	}
	var m, t, p uint64
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return false
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return false
		}
		switch k {
		case "m":
			m = n
		case "t":
			t = n
		case "p":
			p = n
		}
	}
	if m == 0 || t == 0 || p == 0 || p > 255 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(plain), salt, uint32(t), uint32(m), uint8(p), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
