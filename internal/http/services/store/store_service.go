package store

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/store"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
	"github.com/dropDatabas3/hellopos/internal/security/authz"
)

type Deps struct {
	Users   repository.UserRepository
	Stores  repository.StoreRepository
	Denials common.DenialObserver
	Now     func() time.Time
}

type service struct{ deps Deps }

func NewService(deps Deps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps}
}

func (s *service) view(ctx context.Context, st *repository.Store) *dto.StoreResponse {
	// Dueño best-effort: si no se resuelve, la respuesta sale sin storeAdmin.
	owner, _ := s.deps.Users.GetByID(ctx, st.OwnerID)
	out := dto.FromStore(st, owner)
	return &out
}

func (s *service) Create(ctx context.Context, in dto.StoreRequest) (*dto.StoreResponse, error) {
	in.Normalize()
	if err := in.ValidateCreate(); err != nil {
		return nil, common.Invalid(err)
	}
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return nil, err
	}

	st, err := s.deps.Stores.Create(ctx, repository.CreateStoreInput{
		Brand:       in.Brand,
		OwnerID:     u.ID,
		Description: in.Description,
		StoreType:   in.StoreType,
		Status:      types.StorePending,
		Contact: repository.StoreContact{
			Address: in.Contact.Address,
			Phone:   in.Contact.Phone,
			Email:   in.Contact.Email,
		},
		Now: s.deps.Now().UTC(),
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, ErrAlreadyOwnsStore
		}
		return nil, err
	}
	logger.From(ctx).Info("store created",
		logger.Layer("service"), logger.Op("Store.Create"),
		logger.StoreID(st.ID), logger.UserID(u.ID))
	out := dto.FromStore(st, u)
	return &out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*dto.StoreResponse, error) {
	st, err := s.deps.Stores.GetByID(ctx, id)
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	return s.view(ctx, st), nil
}

func (s *service) List(ctx context.Context) ([]dto.StoreResponse, error) {
	sts, err := s.deps.Stores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(sts))
	for i := range sts {
		out = append(out, *s.view(ctx, &sts[i]))
	}
	return out, nil
}

func (s *service) ByAdmin(ctx context.Context) (*dto.StoreResponse, error) {
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return nil, err
	}
	st, err := s.deps.Stores.GetByOwner(ctx, u.ID)
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	out := dto.FromStore(st, u)
	return &out, nil
}

func (s *service) ByEmployee(ctx context.Context) (*dto.StoreResponse, error) {
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return nil, err
	}
	if u.StoreID == nil {
		return nil, common.Deny(ctx, s.deps.Denials, ActionEmployee)
	}
	st, err := s.deps.Stores.GetByID(ctx, *u.StoreID)
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	return s.view(ctx, st), nil
}

// authorizeOwner carga la tienda objetivo y verifica que el caller sea el dueño.
func (s *service) authorizeOwner(ctx context.Context, id int64, action string) (*repository.Store, *repository.User, error) {
	target, err := s.deps.Stores.GetByID(ctx, id)
	if err != nil {
		return nil, nil, common.MapNotFound(err, "Store")
	}
	u, err := common.CurrentUser(ctx, s.deps.Users)
	if err != nil {
		return nil, nil, err
	}

	var (
		owns    bool
		ownedID int64
	)
	owned, err := s.deps.Stores.GetByOwner(ctx, u.ID)
	switch {
	case err == nil:
		owns, ownedID = true, owned.ID
	case !repository.IsNotFound(err):
		return nil, nil, err
	}
	if !authz.CanManageStore(owns, ownedID, target.ID) {
		return nil, nil, common.Deny(ctx, s.deps.Denials, action)
	}
	return target, u, nil
}

func (s *service) Update(ctx context.Context, id int64, in dto.StoreRequest) (*dto.StoreResponse, error) {
	in.Normalize()
	if err := in.ValidateUpdate(); err != nil {
		return nil, common.Invalid(err)
	}
	_, u, err := s.authorizeOwner(ctx, id, ActionUpdate)
	if err != nil {
		return nil, err
	}

	st, err := s.deps.Stores.Update(ctx, id, repository.UpdateStoreInput{
		Brand:          common.NonBlank(in.Brand),
		Description:    common.NonBlank(in.Description),
		StoreType:      common.NonBlank(in.StoreType),
		ContactAddress: common.NonBlank(in.Contact.Address),
		ContactPhone:   common.NonBlank(in.Contact.Phone),
		ContactEmail:   common.NonBlank(in.Contact.Email),
		Now:            s.deps.Now().UTC(),
	})
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	out := dto.FromStore(st, u)
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, _, err := s.authorizeOwner(ctx, id, ActionDelete); err != nil {
		return err
	}
	if err := s.deps.Stores.Delete(ctx, id); err != nil {
		return common.MapNotFound(err, "Store")
	}
	logger.From(ctx).Info("store deleted", logger.Layer("service"), logger.StoreID(id))
	return nil
}

func (s *service) Moderate(ctx context.Context, id int64, status string) (*dto.StoreResponse, error) {
	st, err := types.ParseStoreStatus(status)
	if err != nil {
		return nil, common.Invalid(errors.New("status: must be one of ACTIVE, PENDING, BLOCKED"))
	}
	out, err := s.deps.Stores.SetStatus(ctx, id, st, s.deps.Now().UTC())
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	logger.From(ctx).Info("store moderated", logger.Layer("service"),
		logger.StoreID(id), logger.String("status", string(st)))
	return s.view(ctx, out), nil
}
