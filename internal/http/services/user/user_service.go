// Package user contiene el service de consulta de usuarios.
package user

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/user"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
)

type Service interface {
	Profile(ctx context.Context) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	// List es sólo para /api/admin/users.
	List(ctx context.Context) ([]dto.UserResponse, error)
}

type Deps struct {
	Users repository.UserRepository
}

type service struct{ deps Deps }

func NewService(deps Deps) Service { return &service{deps: deps} }

func (s *service) Profile(ctx context.Context) (*dto.UserResponse, error) {
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("user %d: %w", id, common.ErrUnknownIdentity)
		}
		return nil, err
	}
	out := dto.FromUser(u)
	return &out, nil
}

func (s *service) List(ctx context.Context) ([]dto.UserResponse, error) {
	us, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(us), nil
}
