package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
)

type Categories struct{ pool *pgxpool.Pool }

var _ repository.CategoryRepository = (*Categories)(nil)

func scanCategory(row pgx.Row) (*repository.Category, error) {
	var c repository.Category
	if err := row.Scan(&c.ID, &c.Name, &c.StoreID); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *Categories) Create(ctx context.Context, name string, storeID int64) (*repository.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, store_id) VALUES ($1, $2) RETURNING id, name, store_id`, name, storeID))
}

func (r *Categories) GetByID(ctx context.Context, id int64) (*repository.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `SELECT id, name, store_id FROM categories WHERE id = $1`, id))
}

func (r *Categories) ListByStore(ctx context.Context, storeID int64) ([]repository.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, store_id FROM categories WHERE store_id = $1 ORDER BY id`, storeID)
	if err != nil {
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.Category])
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *Categories) Rename(ctx context.Context, id int64, name string) (*repository.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name, store_id`, id, name))
}

func (r *Categories) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
