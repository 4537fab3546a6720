package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hellopos/internal/domain/repository"
)

type Products struct{ pool *pgxpool.Pool }

var _ repository.ProductRepository = (*Products)(nil)

const productColumns = `id, name, sku, description, mrp, selling_price, brand, image,
	category_id, store_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*repository.Product, error) {
	var p repository.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.MRP, &p.SellingPrice,
		&p.Brand, &p.Image, &p.CategoryID, &p.StoreID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows, err error) ([]repository.Product, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []repository.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, mapErr(rows.Err())
}

func (r *Products) Create(ctx context.Context, in repository.CreateProductInput) (*repository.Product, error) {
	at := nowOr(in.Now)
	return scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (name, sku, description, mrp, selling_price, brand, image,
			category_id, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING `+productColumns,
		in.Name, in.SKU, in.Description, in.MRP, in.SellingPrice, in.Brand, in.Image,
		in.CategoryID, in.StoreID, at))
}

func (r *Products) GetByID(ctx context.Context, id int64) (*repository.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *Products) ListByStore(ctx context.Context, storeID int64) ([]repository.Product, error) {
	return collectProducts(r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = $1 ORDER BY id`, storeID))
}

func (r *Products) Search(ctx context.Context, storeID int64, keyword string) ([]repository.Product, error) {
	return collectProducts(r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE store_id = $1
		  AND (name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%' OR brand ILIKE '%' || $2 || '%')
		ORDER BY id`, storeID, keyword))
}

// Update usa COALESCE: NULL conserva el valor. Una categoría de otra tienda se rechaza.
func (r *Products) Update(ctx context.Context, id int64, in repository.UpdateProductInput) (*repository.Product, error) {
	var out *repository.Product
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if in.CategoryID != nil {
			var ok bool
			err := tx.QueryRow(ctx, `
				SELECT EXISTS (
					SELECT 1 FROM categories c JOIN products p ON p.store_id = c.store_id
					WHERE c.id = $1 AND p.id = $2)`, *in.CategoryID, id).Scan(&ok)
			if err != nil {
				return mapErr(err)
			}
			if !ok {
				return repository.ErrInvalidInput
			}
		}
		p, err := scanProduct(tx.QueryRow(ctx, `
			UPDATE products SET
				name          = COALESCE($2, name),
				sku           = COALESCE($3, sku),
				description   = COALESCE($4, description),
				mrp           = COALESCE($5, mrp),
				selling_price = COALESCE($6, selling_price),
				brand         = COALESCE($7, brand),
				image         = COALESCE($8, image),
				category_id   = COALESCE($9, category_id),
				updated_at    = $10
			WHERE id = $1
			RETURNING `+productColumns,
			id, in.Name, in.SKU, in.Description, in.MRP, in.SellingPrice,
			in.Brand, in.Image, in.CategoryID, nowOr(in.Now)))
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Products) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
