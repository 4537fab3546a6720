package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

type Stores struct{ pool *pgxpool.Pool }

var _ repository.StoreRepository = (*Stores)(nil)

const storeColumns = `id, brand, owner_id, description, store_type, status,
	contact_address, contact_phone, contact_email, created_at, updated_at`

func scanStore(row pgx.Row) (*repository.Store, error) {
	var (
		s      repository.Store
		status string
	)
	err := row.Scan(&s.ID, &s.Brand, &s.OwnerID, &s.Description, &s.StoreType, &status,
		&s.Contact.Address, &s.Contact.Phone, &s.Contact.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	s.Status = types.StoreStatus(status)
	return &s, nil
}

func (r *Stores) Create(ctx context.Context, in repository.CreateStoreInput) (*repository.Store, error) {
	at := nowOr(in.Now)
	status := in.Status
	if status == "" {
		status = types.StorePending
	}
	return scanStore(r.pool.QueryRow(ctx, `
		INSERT INTO stores (brand, owner_id, description, store_type, status,
			contact_address, contact_phone, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING `+storeColumns,
		in.Brand, in.OwnerID, in.Description, in.StoreType, string(status),
		in.Contact.Address, in.Contact.Phone, in.Contact.Email, at))
}

func (r *Stores) GetByID(ctx context.Context, id int64) (*repository.Store, error) {
	return scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
}

func (r *Stores) GetByOwner(ctx context.Context, ownerID int64) (*repository.Store, error) {
	return scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id = $1`, ownerID))
}

func (r *Stores) List(ctx context.Context) ([]repository.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []repository.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, mapErr(rows.Err())
}

// Update usa COALESCE: un parámetro NULL conserva el valor actual.
func (r *Stores) Update(ctx context.Context, id int64, in repository.UpdateStoreInput) (*repository.Store, error) {
	return scanStore(r.pool.QueryRow(ctx, `
		UPDATE stores SET
			brand           = COALESCE($2, brand),
			description     = COALESCE($3, description),
			store_type      = COALESCE($4, store_type),
			contact_address = COALESCE($5, contact_address),
			contact_phone   = COALESCE($6, contact_phone),
			contact_email   = COALESCE($7, contact_email),
			updated_at      = $8
		WHERE id = $1
		RETURNING `+storeColumns,
		id, in.Brand, in.Description, in.StoreType,
		in.ContactAddress, in.ContactPhone, in.ContactEmail, nowOr(in.Now)))
}

func (r *Stores) SetStatus(ctx context.Context, id int64, status types.StoreStatus, at time.Time) (*repository.Store, error) {
	return scanStore(r.pool.QueryRow(ctx,
		`UPDATE stores SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+storeColumns,
		id, string(status), nowOr(at)))
}

// Delete: categorías y productos caen por ON DELETE CASCADE, empleados por SET NULL.
func (r *Stores) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
