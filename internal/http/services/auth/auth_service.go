package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/auth"
	userdto "github.com/dropDatabas3/hellopos/internal/http/dto/user"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	jwtx "github.com/dropDatabas3/hellopos/internal/jwt"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/password"
	"github.com/dropDatabas3/hellopos/internal/security/principal"
)

// Deps contiene las dependencias del service.
type Deps struct {
	Users  repository.UserRepository
	Hasher *password.Hasher
	Codec  *jwtx.Codec
	// Policy es opcional (incluye la blacklist).
	Policy *password.Policy
	Tokens TokenObserver
	Now    func() time.Time
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps}
}

func (s *service) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.signup"),
		logger.Op("Signup"),
	)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, common.Invalid(err)
	}

	role, _ := types.ParseRole(in.Role)
	if role == types.RoleNone {
		role = types.RoleUser
	}
	// Antes de cualquier lectura o escritura.
	if !role.SelfAssignable() {
		log.Info("restricted role requested", logger.Role(role.String()))
		return nil, ErrRestrictedRole
	}

	if s.deps.Policy != nil {
		if ok, reasons := s.deps.Policy.Validate(in.Password); !ok {
			return nil, common.Invalid(fmt.Errorf("password: %s", password.Describe(reasons)))
		}
	}

	if _, err := s.deps.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateIdentity
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.deps.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: hash,
		Now:          s.deps.Now().UTC(),
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	log.Info("user registered", logger.UserID(u.ID), logger.Role(u.Role.String()))

	return s.respond(u, "signup", "Register Successfully!")
}

func (s *service) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, common.Invalid(err)
	}

	u, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("user not found")
			return nil, common.ErrUnknownIdentity
		}
		return nil, err
	}
	log = log.With(logger.UserID(u.ID))

	if !s.deps.Hasher.Verify(in.Password, u.PasswordHash) {
		log.Debug("password check failed")
		return nil, ErrWrongSecret
	}

	at := s.deps.Now().UTC()
	if err := s.deps.Users.TouchLastLogin(ctx, u.ID, at); err != nil {
		log.Warn("touch last login failed", logger.Err(err))
	} else {
		u.LastLogin = &at
		u.UpdatedAt = at
	}

	return s.respond(u, "login", "Login successfully")
}

func (s *service) respond(u *repository.User, flow, msg string) (*dto.AuthResponse, error) {
	tok, _, err := s.deps.Codec.Issue(principal.New(u.Email, u.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenIssueFailed, err)
	}
	if s.deps.Tokens != nil {
		s.deps.Tokens.TokenIssued(flow)
	}
	return &dto.AuthResponse{
		JWT:     tok,
		Message: msg,
		User:    userdto.FromUser(u),
	}, nil
}
