// Package memory implementa los repositorios en memoria. Lo usan el modo dev
// (storage.driver=memory) y los tests de services y controllers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

// DB guarda todas las tablas bajo un único mutex, así las bajas en cascada
// (tienda -> categorías/productos/empleados) son atómicas.
type DB struct {
	mu sync.RWMutex

	users      map[int64]repository.User
	userEmails map[string]int64

	stores      map[int64]repository.Store
	storeOwners map[int64]int64

	categories map[int64]repository.Category

	products    map[int64]repository.Product
	productSKUs map[string]int64

	seq int64
}

func New() *DB {
	return &DB{
		users:       map[int64]repository.User{},
		userEmails:  map[string]int64{},
		stores:      map[int64]repository.Store{},
		storeOwners: map[int64]int64{},
		categories:  map[int64]repository.Category{},
		products:    map[int64]repository.Product{},
		productSKUs: map[string]int64{},
	}
}

func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

func (db *DB) Users() *Users           { return &Users{db: db} }
func (db *DB) Stores() *Stores         { return &Stores{db: db} }
func (db *DB) Categories() *Categories { return &Categories{db: db} }
func (db *DB) Products() *Products     { return &Products{db: db} }

func (db *DB) Ping(context.Context) error { return nil }
func (db *DB) Close()                     {}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func now(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func sortByID[T any](xs []T, id func(T) int64) {
	sort.Slice(xs, func(i, j int) bool { return id(xs[i]) < id(xs[j]) })
}

// ---- users ----

type Users struct{ db *DB }

var _ repository.UserRepository = (*Users)(nil)

func cloneUser(u repository.User) *repository.User {
	u.StoreID = copyID(u.StoreID)
	u.LastLogin = copyTime(u.LastLogin)
	return &u
}

func (r *Users) GetByEmail(_ context.Context, email string) (*repository.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	id, ok := r.db.userEmails[key(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.db.users[id]), nil
}

func (r *Users) GetByID(_ context.Context, id int64) (*repository.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Users) Create(_ context.Context, in repository.CreateUserInput) (*repository.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, dup := r.db.userEmails[key(in.Email)]; dup {
		return nil, repository.ErrConflict
	}
	if in.StoreID != nil {
		if _, ok := r.db.stores[*in.StoreID]; !ok {
			return nil, repository.ErrInvalidInput
		}
	}
	at := now(in.Now)
	u := repository.User{
		ID:           r.db.nextID(),
		FullName:     in.FullName,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: in.PasswordHash,
		StoreID:      copyID(in.StoreID),
		CreatedAt:    at,
		UpdatedAt:    at,
		LastLogin:    &at,
	}
	r.db.users[u.ID] = u
	r.db.userEmails[key(u.Email)] = u.ID
	return cloneUser(u), nil
}

func (r *Users) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	u.UpdatedAt = at
	r.db.users[id] = u
	return nil
}

func (r *Users) List(context.Context) ([]repository.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]repository.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, *cloneUser(u))
	}
	sortByID(out, func(u repository.User) int64 { return u.ID })
	return out, nil
}

// AssignStore fija la tienda de trabajo de un usuario. No es parte de
// UserRepository; lo usan tests y el seed de desarrollo.
func (r *Users) AssignStore(id int64, storeID *int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if storeID != nil {
		if _, ok := r.db.stores[*storeID]; !ok {
			return repository.ErrInvalidInput
		}
	}
	u.StoreID = copyID(storeID)
	r.db.users[id] = u
	return nil
}

// ---- stores ----

type Stores struct{ db *DB }

var _ repository.StoreRepository = (*Stores)(nil)

func (r *Stores) Create(_ context.Context, in repository.CreateStoreInput) (*repository.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[in.OwnerID]; !ok {
		return nil, repository.ErrInvalidInput
	}
	if _, dup := r.db.storeOwners[in.OwnerID]; dup {
		return nil, repository.ErrConflict
	}
	at := now(in.Now)
	st := in.Status
	if st == "" {
		st = types.StorePending
	}
	s := repository.Store{
		ID:          r.db.nextID(),
		Brand:       in.Brand,
		OwnerID:     in.OwnerID,
		Description: in.Description,
		StoreType:   in.StoreType,
		Status:      st,
		Contact:     in.Contact,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	r.db.stores[s.ID] = s
	r.db.storeOwners[s.OwnerID] = s.ID
	return &s, nil
}

func (r *Stores) GetByID(_ context.Context, id int64) (*repository.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *Stores) GetByOwner(_ context.Context, ownerID int64) (*repository.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	id, ok := r.db.storeOwners[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s := r.db.stores[id]
	return &s, nil
}

func (r *Stores) List(context.Context) ([]repository.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]repository.Store, 0, len(r.db.stores))
	for _, s := range r.db.stores {
		out = append(out, s)
	}
	sortByID(out, func(s repository.Store) int64 { return s.ID })
	return out, nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (r *Stores) Update(_ context.Context, id int64, in repository.UpdateStoreInput) (*repository.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	setIf(&s.Brand, in.Brand)
	setIf(&s.Description, in.Description)
	setIf(&s.StoreType, in.StoreType)
	setIf(&s.Contact.Address, in.ContactAddress)
	setIf(&s.Contact.Phone, in.ContactPhone)
	setIf(&s.Contact.Email, in.ContactEmail)
	s.UpdatedAt = now(in.Now)
	r.db.stores[id] = s
	return &s, nil
}

func (r *Stores) SetStatus(_ context.Context, id int64, status types.StoreStatus, at time.Time) (*repository.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = now(at)
	r.db.stores[id] = s
	return &s, nil
}

func (r *Stores) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stores[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.db.stores, id)
	delete(r.db.storeOwners, s.OwnerID)
	for cid, c := range r.db.categories {
		if c.StoreID == id {
			delete(r.db.categories, cid)
		}
	}
	for pid, p := range r.db.products {
		if p.StoreID == id {
			delete(r.db.products, pid)
			delete(r.db.productSKUs, key(p.SKU))
		}
	}
	for uid, u := range r.db.users {
		if u.StoreID != nil && *u.StoreID == id {
			u.StoreID = nil
			r.db.users[uid] = u
		}
	}
	return nil
}

// ---- categories ----

type Categories struct{ db *DB }

var _ repository.CategoryRepository = (*Categories)(nil)

func (r *Categories) Create(_ context.Context, name string, storeID int64) (*repository.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[storeID]; !ok {
		return nil, repository.ErrInvalidInput
	}
	c := repository.Category{ID: r.db.nextID(), Name: name, StoreID: storeID}
	r.db.categories[c.ID] = c
	return &c, nil
}

func (r *Categories) GetByID(_ context.Context, id int64) (*repository.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Categories) ListByStore(_ context.Context, storeID int64) ([]repository.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []repository.Category{}
	for _, c := range r.db.categories {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	sortByID(out, func(c repository.Category) int64 { return c.ID })
	return out, nil
}

func (r *Categories) Rename(_ context.Context, id int64, name string) (*repository.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name = name
	r.db.categories[id] = c
	return &c, nil
}

func (r *Categories) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.categories, id)
	for pid, p := range r.db.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.db.products[pid] = p
		}
	}
	return nil
}

// ---- products ----

type Products struct{ db *DB }

var _ repository.ProductRepository = (*Products)(nil)

func cloneProduct(p repository.Product) *repository.Product {
	p.CategoryID = copyID(p.CategoryID)
	return &p
}

func (r *Products) Create(_ context.Context, in repository.CreateProductInput) (*repository.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, dup := r.db.productSKUs[key(in.SKU)]; dup {
		return nil, repository.ErrConflict
	}
	if _, ok := r.db.stores[in.StoreID]; !ok {
		return nil, repository.ErrInvalidInput
	}
	if in.CategoryID != nil {
		if _, ok := r.db.categories[*in.CategoryID]; !ok {
			return nil, repository.ErrInvalidInput
		}
	}
	at := now(in.Now)
	p := repository.Product{
		ID:           r.db.nextID(),
		Name:         in.Name,
		SKU:          in.SKU,
		Description:  in.Description,
		MRP:          in.MRP,
		SellingPrice: in.SellingPrice,
		Brand:        in.Brand,
		Image:        in.Image,
		CategoryID:   copyID(in.CategoryID),
		StoreID:      in.StoreID,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	r.db.products[p.ID] = p
	r.db.productSKUs[key(p.SKU)] = p.ID
	return cloneProduct(p), nil
}

func (r *Products) GetByID(_ context.Context, id int64) (*repository.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r *Products) filter(storeID int64, match func(repository.Product) bool) []repository.Product {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []repository.Product{}
	for _, p := range r.db.products {
		if p.StoreID == storeID && match(p) {
			out = append(out, *cloneProduct(p))
		}
	}
	sortByID(out, func(p repository.Product) int64 { return p.ID })
	return out
}

func (r *Products) ListByStore(_ context.Context, storeID int64) ([]repository.Product, error) {
	return r.filter(storeID, func(repository.Product) bool { return true }), nil
}

func (r *Products) Search(_ context.Context, storeID int64, keyword string) ([]repository.Product, error) {
	kw := key(keyword)
	return r.filter(storeID, func(p repository.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.SKU), kw) ||
			strings.Contains(strings.ToLower(p.Brand), kw)
	}), nil
}

func (r *Products) Update(_ context.Context, id int64, in repository.UpdateProductInput) (*repository.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.CategoryID != nil {
		c, ok := r.db.categories[*in.CategoryID]
		if !ok || c.StoreID != p.StoreID {
			return nil, repository.ErrInvalidInput
		}
	}
	if in.SKU != nil && key(*in.SKU) != key(p.SKU) {
		if _, dup := r.db.productSKUs[key(*in.SKU)]; dup {
			return nil, repository.ErrConflict
		}
		delete(r.db.productSKUs, key(p.SKU))
		r.db.productSKUs[key(*in.SKU)] = p.ID
	}
	setIf(&p.SKU, in.SKU)
	if in.CategoryID != nil {
		p.CategoryID = copyID(in.CategoryID)
	}
	setIf(&p.Name, in.Name)
	setIf(&p.Description, in.Description)
	setIf(&p.Brand, in.Brand)
	setIf(&p.Image, in.Image)
	if in.MRP != nil {
		p.MRP = *in.MRP
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	p.UpdatedAt = now(in.Now)
	r.db.products[id] = p
	return cloneProduct(p), nil
}

func (r *Products) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.db.products, id)
	delete(r.db.productSKUs, key(p.SKU))
	return nil
}
