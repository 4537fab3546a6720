package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
	"github.com/dropDatabas3/hellopos/internal/domain/types"
)

type Users struct{ pool *pgxpool.Pool }

var _ repository.UserRepository = (*Users)(nil)

const userColumns = `id, full_name, email, phone, role, password, store_id, created_at, updated_at, last_login`

func scanUser(row pgx.Row) (*repository.User, error) {
	var (
		u    repository.User
		role string
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &role, &u.PasswordHash,
		&u.StoreID, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if err != nil {
		return nil, mapErr(err)
	}
	u.Role = types.Role(role)
	return &u, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *Users) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *Users) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	at := nowOr(in.Now)
	return scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, email, phone, role, password, store_id, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $7)
		RETURNING `+userColumns,
		in.FullName, in.Email, in.Phone, string(in.Role), in.PasswordHash, in.StoreID, at))
}

func (r *Users) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Users) List(ctx context.Context) ([]repository.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []repository.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, mapErr(rows.Err())
}
