// Package category contiene el service de categorías. Toda mutación pasa por
// authz.CanManageCategory antes de escribir.
package category

import (
	"context"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/category"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
)

type Service interface {
	Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	ListByStore(ctx context.Context, storeID int64) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

const (
	ActionCreate = "category.create"
	ActionUpdate = "category.update"
	ActionDelete = "category.delete"
)

type Deps struct {
	Users      repository.UserRepository
	Stores     repository.StoreRepository
	Categories repository.CategoryRepository
	Denials    common.DenialObserver
}

type service struct{ deps Deps }

func NewService(deps Deps) Service { return &service{deps: deps} }

// authorize resuelve caller y tienda, y aplica la regla.
func (s *service) authorize(ctx context.Context, storeID int64, action string) error {
	st, err := s.deps.Stores.GetByID(ctx, storeID)
	if err != nil {
		return common.MapNotFound(err, "Store")
	}
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return err
	}
	if !authz.CanManageCategory(u.Role, u.ID, st.OwnerID) {
		return common.Deny(ctx, s.deps.Denials, action)
	}
	return nil
}

func (s *service) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	in.Normalize()
	// la autorización va antes que la validación cuando ya hay tienda
	if in.StoreID != 0 {
		if err := s.authorize(ctx, in.StoreID, ActionCreate); err != nil {
			return nil, err
		}
	}
	if err := in.ValidateCreate(); err != nil {
		return nil, common.Invalid(err)
	}
	c, err := s.deps.Categories.Create(ctx, in.Name, in.StoreID)
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	logger.From(ctx).Info("category created", logger.Layer("service"),
		logger.CategoryID(c.ID), logger.StoreID(c.StoreID))
	out := dto.FromCategory(c)
	return &out, nil
}

func (s *service) ListByStore(ctx context.Context, storeID int64) ([]dto.CategoryResponse, error) {
	cs, err := s.deps.Categories.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return dto.FromCategories(cs), nil
}

func (s *service) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	in.Normalize()
	c, err := s.deps.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, common.MapNotFound(err, "Category")
	}
	if err := s.authorize(ctx, c.StoreID, ActionUpdate); err != nil {
		return nil, err
	}
	if err := in.ValidateUpdate(); err != nil {
		return nil, common.Invalid(err)
	}
	if in.Name != "" {
		if c, err = s.deps.Categories.Rename(ctx, id, in.Name); err != nil {
			return nil, common.MapNotFound(err, "Category")
		}
	}
	out := dto.FromCategory(c)
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	c, err := s.deps.Categories.GetByID(ctx, id)
	if err != nil {
		return common.MapNotFound(err, "Category")
	}
	if err := s.authorize(ctx, c.StoreID, ActionDelete); err != nil {
		return err
	}
	if err := s.deps.Categories.Delete(ctx, id); err != nil {
		return common.MapNotFound(err, "Category")
	}
	return nil
}
