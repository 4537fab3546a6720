// Package jwt emite y valida los access tokens HS256 del punto de venta.
//
// El token es stateless: no se guarda en el servidor y no hay revocación.
// Payload: sub y email (identificador), authorities (roles separados por coma),
// iat, exp = iat + TTL, jti y opcionalmente iss.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

// MinSecretLen es el mínimo aceptado para el secreto HMAC (256 bits).
const MinSecretLen = 32

var (
	// ErrTokenExpired: firma válida pero exp ya pasó.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid: firma, formato o claims inválidos.
	ErrTokenInvalid = errors.New("token invalid")

	ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLen)
)

// Claims es el payload del token.
type Claims struct {
	Email string `json:"email"`
	// Authorities es obligatorio; "" es un principal sin rol, ausente es token inválido.
	Authorities *string `json:"authorities"`
	jwtv5.RegisteredClaims
}

type Config struct {
	Secret []byte
	TTL    time.Duration
	// Issuer se emite como iss y, si no está vacío, se exige al validar.
	Issuer string
	// Now reemplaza el reloj (tests). nil = time.Now.
	Now func() time.Time
}

// Codec firma y verifica tokens con un secreto compartido. Es inmutable y
// seguro para uso concurrente.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &Codec{secret: secret, ttl: cfg.TTL, issuer: cfg.Issuer, now: now}, nil
}

func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue firma un token para p. Devuelve el token y su expiración.
func (c *Codec) Issue(p principal.Principal) (string, time.Time, error) {
	if strings.TrimSpace(p.Identifier) == "" {
		return "", time.Time{}, errors.New("jwt: empty identifier")
	}
	// precisión de segundos: es lo que sobrevive al encoding NumericDate
	iat := c.now().Truncate(time.Second)
	exp := iat.Add(c.ttl)

	authorities := p.AuthoritiesClaim()
	claims := Claims{
		Email:       p.Identifier,
		Authorities: &authorities,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   p.Identifier,
			Issuer:    c.issuer,
			IssuedAt:  jwtv5.NewNumericDate(iat),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}

// ParseClaims verifica firma y tiempos y devuelve el payload crudo.
// Los errores son siempre ErrTokenExpired o ErrTokenInvalid (wrappeando la causa).
func (c *Codec) ParseClaims(raw string) (*Claims, error) {
	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithTimeFunc(c.now),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithIssuedAt(),
	}
	if c.issuer != "" {
		opts = append(opts, jwtv5.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	tok, err := jwtv5.ParseWithClaims(raw, claims, func(*jwtv5.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		// v5 verifica la firma antes que los claims: un token adulterado nunca llega a "expired".
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode valida raw y arma el Principal.
// Email vacío, sin claim authorities, sub distinto del email o una authority
// fuera del conjunto de roles se tratan como token inválido.
func (c *Codec) Decode(raw string) (principal.Principal, error) {
	claims, err := c.ParseClaims(raw)
	if err != nil {
		return principal.Principal{}, err
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return principal.Principal{}, fmt.Errorf("%w: missing email claim", ErrTokenInvalid)
	}
	if claims.Subject != "" && claims.Subject != email {
		return principal.Principal{}, fmt.Errorf("%w: subject mismatch", ErrTokenInvalid)
	}

	if claims.Authorities == nil {
		return principal.Principal{}, fmt.Errorf("%w: missing authorities claim", ErrTokenInvalid)
	}

	p := principal.Principal{Identifier: email}
	for _, a := range strings.Split(*claims.Authorities, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		r := types.Role(a)
		if !r.Valid() {
			return principal.Principal{}, fmt.Errorf("%w: unknown authority %q", ErrTokenInvalid, a)
		}
		if p.HasAuthority(a) {
			continue
		}
		if p.Role == types.RoleNone {
			p.Role = r
		}
		p.Authorities = append(p.Authorities, a)
	}
	return p, nil
}
