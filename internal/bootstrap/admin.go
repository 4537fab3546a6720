// Package bootstrap crea el primer ROLE_ADMIN. El signup público nunca asigna
// ese rol, así que es la única vía (junto con posctl admin create).
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/password"
)

const MinAdminPasswordLen = 10

type AdminConfig struct {
	Users    repository.UserRepository
	Hasher   *password.Hasher
	Email    string
	Password string
	FullName string
	Now      func() time.Time
}

// Result dice qué hizo EnsureAdmin.
type Result int

const (
	Skipped Result = iota
	Created
	Exists
)

var ErrNotAdmin = errors.New("user exists with a non-admin role")

// EnsureAdmin es idempotente: si el email ya es ROLE_ADMIN no hace nada; si
// existe con otro rol devuelve ErrNotAdmin sin tocarlo. Email vacío = Skipped.
func EnsureAdmin(ctx context.Context, cfg AdminConfig) (*repository.User, Result, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return nil, Skipped, nil
	}
	log := logger.From(ctx).With(logger.Component("bootstrap"), logger.Email(email))

	existing, err := cfg.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != types.RoleAdmin {
			return existing, Exists, fmt.Errorf("%s: %w", email, ErrNotAdmin)
		}
		log.Debug("admin already present")
		return existing, Exists, nil
	case !repository.IsNotFound(err):
		return nil, Skipped, fmt.Errorf("lookup admin: %w", err)
	}

	if len(cfg.Password) < MinAdminPasswordLen {
		return nil, Skipped, fmt.Errorf("admin password must be at least %d characters", MinAdminPasswordLen)
	}
	hash, err := cfg.Hasher.Hash(cfg.Password)
	if err != nil {
		return nil, Skipped, fmt.Errorf("hash admin password: %w", err)
	}

	name := strings.TrimSpace(cfg.FullName)
	if name == "" {
		name = "Administrator"
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	u, err := cfg.Users.Create(ctx, repository.CreateUserInput{
		FullName:     name,
		Email:        email,
		Role:         types.RoleAdmin,
		PasswordHash: hash,
		Now:          now().UTC(),
	})
	if err != nil {
		if repository.IsConflict(err) {
			// Otro proceso lo creó en paralelo.
			return nil, Exists, nil
		}
		return nil, Skipped, fmt.Errorf("create admin: %w", err)
	}
	log.Info("admin user created", logger.UserID(u.ID))
	return u, Created, nil
}

// PasswordReader lee un secreto sin eco (x/term en una terminal real).
type PasswordReader func() ([]byte, error)

// PromptCredentials pide email y password (con confirmación) por consola.
func PromptCredentials(in io.Reader, out io.Writer, readPassword PasswordReader) (email, pwd string, err error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Admin Email: ")
	email, err = reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", err
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", "", errors.New("invalid email")
	}

	fmt.Fprintf(out, "Admin Password (min %d chars): ", MinAdminPasswordLen)
	first, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", "", err
	}
	if len(first) < MinAdminPasswordLen {
		return "", "", fmt.Errorf("password must be at least %d characters", MinAdminPasswordLen)
	}

	fmt.Fprint(out, "Confirm Password: ")
	confirm, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", "", err
	}
	if string(first) != string(confirm) {
		return "", "", errors.New("passwords do not match")
	}
	return email, string(first), nil
}
