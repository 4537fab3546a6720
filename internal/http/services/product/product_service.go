// Package product contiene el service de productos. Basta con estar autenticado
// para mutar productos.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	dto "github.com/dropDatabas3/hellopos/internal/http/dto/product"
	"github.com/dropDatabas3/hellopos/internal/http/services/common"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

type Service interface {
	Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
	ListByStore(ctx context.Context, storeID int64) ([]dto.ProductResponse, error)
	Search(ctx context.Context, storeID int64, keyword string) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

var ErrDuplicateSKU = errors.New("sku already exists")

var errForeignCategory = errors.New("categoryId: must belong to the product's store")

type Deps struct {
	Stores     repository.StoreRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Now        func() time.Time
}

type service struct{ deps Deps }

func NewService(deps Deps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps}
}

func (s *service) category(ctx context.Context, id *int64) *repository.Category {
	if id == nil {
		return nil
	}
	c, err := s.deps.Categories.GetByID(ctx, *id)
	if err != nil {
		return nil
	}
	return c
}

func (s *service) views(ctx context.Context, ps []repository.Product) []dto.ProductResponse {
	cats := map[int64]*repository.Category{}
	out := make([]dto.ProductResponse, 0, len(ps))
	for i := range ps {
		var c *repository.Category
		if id := ps[i].CategoryID; id != nil {
			var ok bool
			if c, ok = cats[*id]; !ok {
				c = s.category(ctx, id)
				cats[*id] = c
			}
		}
		out = append(out, dto.FromProduct(&ps[i], c))
	}
	return out
}

func (s *service) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := in.ValidateCreate(); err != nil {
		return nil, common.Invalid(err)
	}
	st, err := s.deps.Stores.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, common.MapNotFound(err, "Store")
	}
	cat, err := s.deps.Categories.GetByID(ctx, *in.CategoryID)
	if err != nil {
		return nil, common.MapNotFound(err, "Category")
	}
	if cat.StoreID != st.ID {
		return nil, common.Invalid(errForeignCategory)
	}

	p, err := s.deps.Products.Create(ctx, repository.CreateProductInput{
		Name:         in.Name,
		SKU:          in.SKU,
		Description:  in.Description,
		MRP:          deref(in.MRP),
		SellingPrice: deref(in.SellingPrice),
		Brand:        in.Brand,
		Image:        in.Image,
		CategoryID:   in.CategoryID,
		StoreID:      st.ID,
		Now:          s.deps.Now().UTC(),
	})
	if err != nil {
		return nil, mapWriteErr(err)
	}
	logger.From(ctx).Info("product created", logger.Layer("service"),
		logger.ProductID(p.ID), logger.StoreID(p.StoreID))
	out := dto.FromProduct(p, cat)
	return &out, nil
}

func (s *service) ListByStore(ctx context.Context, storeID int64) ([]dto.ProductResponse, error) {
	ps, err := s.deps.Products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, ps), nil
}

func (s *service) Search(ctx context.Context, storeID int64, keyword string) ([]dto.ProductResponse, error) {
	ps, err := s.deps.Products.Search(ctx, storeID, keyword)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, ps), nil
}

func (s *service) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := in.ValidateUpdate(); err != nil {
		return nil, common.Invalid(err)
	}
	cur, err := s.deps.Products.GetByID(ctx, id)
	if err != nil {
		return nil, common.MapNotFound(err, "Product")
	}
	if in.CategoryID != nil {
		cat, err := s.deps.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, common.MapNotFound(err, "Category")
		}
		if cat.StoreID != cur.StoreID {
			return nil, common.Invalid(errForeignCategory)
		}
	}

	p, err := s.deps.Products.Update(ctx, id, repository.UpdateProductInput{
		Name:         common.NonBlank(in.Name),
		SKU:          common.NonBlank(in.SKU),
		Description:  common.NonBlank(in.Description),
		MRP:          in.MRP,
		SellingPrice: in.SellingPrice,
		Brand:        common.NonBlank(in.Brand),
		Image:        common.NonBlank(in.Image),
		CategoryID:   in.CategoryID,
		Now:          s.deps.Now().UTC(),
	})
	if err != nil {
		return nil, mapWriteErr(err)
	}
	out := dto.FromProduct(p, s.category(ctx, p.CategoryID))
	return &out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.deps.Products.Delete(ctx, id); err != nil {
		return common.MapNotFound(err, "Product")
	}
	return nil
}

func mapWriteErr(err error) error {
	switch {
	case repository.IsConflict(err):
		return ErrDuplicateSKU
	case errors.Is(err, repository.ErrInvalidInput):
		return common.Invalid(errForeignCategory)
	}
	return common.MapNotFound(err, "Product")
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
