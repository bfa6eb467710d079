package repository

import (
	"context"

	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

// ConditionalDecrementStock is a single read-check-write statement: the
// stock precondition is evaluated at commit time, so a concurrent decrement
// cannot drive stock negative.
func (r *ProductRepository) ConditionalDecrementStock(ctx context.Context, productID uuid.UUID, qty int32) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		productID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement stock", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`,
			productID).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to check product existence", err)
		}
		if !exists {
			return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}

	return nil
}

// ApplyDiscountPricing touches only the sale fields so the write can never
// fail on validation of unrelated columns.
func (r *ProductRepository) ApplyDiscountPricing(ctx context.Context, productID uuid.UUID, salePriceCents int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET sale_price_cents = $2, is_discount_active = true, updated_at = now()
		WHERE id = $1`,
		productID, salePriceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to apply discount pricing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) ClearDiscountPricing(ctx context.Context, productID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET sale_price_cents = 0, is_discount_active = false, updated_at = now()
		WHERE id = $1`,
		productID)
	if err != nil {
		return infra.WrapRepoErr("failed to clear discount pricing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) UpdatePricing(ctx context.Context, productID uuid.UUID, pricing product.Pricing) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET price_cents = $2, stock = $3, updated_at = now()
		WHERE id = $1`,
		productID, pricing.PriceCents, pricing.Stock)
	if err != nil {
		return infra.WrapRepoErr("failed to update product pricing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
