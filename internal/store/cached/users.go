// Package cached decora repositorios con un cache.Client (memoria o redis).
// Sólo se cachean lecturas de usuarios; login y cada request autenticado que
// resuelve al usuario actual pasan por GetByEmail.
package cached

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/hellopos/internal/cache"
	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/observability/logger"
)

type Users struct {
	next  repository.UserRepository
	cache cache.Client
	ttl   time.Duration
	group singleflight.Group
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers(next repository.UserRepository, c cache.Client, ttl time.Duration) *Users {
	return &Users{next: next, cache: c, ttl: ttl}
}

func emailKey(email string) string { return "user:email:" + strings.ToLower(strings.TrimSpace(email)) }
func idKey(id int64) string        { return "user:id:" + strconv.FormatInt(id, 10) }

func (r *Users) load(ctx context.Context, key string, fetch func() (*repository.User, error)) (*repository.User, error) {
	if b, err := r.cache.Get(ctx, key); err == nil {
		var u repository.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		_ = r.cache.Delete(ctx, key)
	} else if !cache.IsNotFound(err) {
		logger.From(ctx).Warn("user cache read failed", logger.Key(key), logger.Err(err))
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		u, err := fetch()
		if err != nil {
			return nil, err
		}
		r.store(ctx, u)
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	u := *v.(*repository.User)
	return &u, nil
}

func (r *Users) store(ctx context.Context, u *repository.User) {
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	for _, k := range []string{emailKey(u.Email), idKey(u.ID)} {
		if err := r.cache.Set(ctx, k, b, r.ttl); err != nil {
			logger.From(ctx).Warn("user cache write failed", logger.Key(k), logger.Err(err))
		}
	}
}

func (r *Users) evict(ctx context.Context, u *repository.User) {
	_ = r.cache.Delete(ctx, emailKey(u.Email))
	_ = r.cache.Delete(ctx, idKey(u.ID))
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return r.load(ctx, emailKey(email), func() (*repository.User, error) {
		return r.next.GetByEmail(ctx, email)
	})
}

func (r *Users) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	return r.load(ctx, idKey(id), func() (*repository.User, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *Users) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	return r.next.Create(ctx, in)
}

func (r *Users) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if err := r.next.TouchLastLogin(ctx, id, at); err != nil {
		return err
	}
	if u, err := r.next.GetByID(ctx, id); err == nil {
		r.evict(ctx, u)
	} else {
		_ = r.cache.Delete(ctx, idKey(id))
	}
	return nil
}

// List no se cachea: es un listado administrativo.
func (r *Users) List(ctx context.Context) ([]repository.User, error) {
	return r.next.List(ctx)
}
