package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, price_cents, stock, sale_price_cents, is_discount_active,
		       created_at, updated_at
		FROM products WHERE id = $1`,
		id)

	v, err := scanProductView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return v, nil
}

func (r *ProductReadStore) FindPage(ctx context.Context, limit, offset int32) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price_cents, stock, sale_price_cents, is_discount_active,
		       created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*queries.ProductView
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductView(row rowScanner) (*queries.ProductView, error) {
	var v queries.ProductView
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(
		&v.ID, &v.Name, &v.PriceCents, &v.Stock, &v.SalePriceCents,
		&v.IsDiscountActive, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
