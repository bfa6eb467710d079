package repository

import (
	"context"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

// Create inserts the order row and its line items. Callers run this inside
// the same transaction as the stock decrements so nothing is visible until
// the whole unit commits.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, total_cents, shipping_address, shipping_cost_cents,
			payment_method, payment_ref, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID(), o.UserID(), o.TotalCents(),
		o.Shipping().Address, o.Shipping().CostCents,
		o.PaymentMethod(), pgconv.StringPtrToPgtype(o.PaymentRef()), o.Status().String())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	for _, it := range o.Items() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, qty, unit_price_cents)
			VALUES ($1, $2, $3, $4)`,
			o.ID(), it.ProductID, it.Qty, it.UnitPriceCents)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return o.ID(), nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id uuid.UUID, status order.Status, deliveredAt *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2,
		    is_delivered = CASE WHEN $3::timestamptz IS NULL THEN is_delivered ELSE true END,
		    delivered_at = COALESCE($3, delivered_at),
		    updated_at = now()
		WHERE id = $1`,
		id, status.String(), pgconv.TimePtrToPgtype(deliveredAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, paymentRef *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET is_paid = true,
		    paid_at = $2,
		    payment_ref = COALESCE($3, payment_ref),
		    updated_at = now()
		WHERE id = $1`,
		id, paidAt, pgconv.StringPtrToPgtype(paymentRef))
	if err != nil {
		return infra.WrapRepoErr("failed to mark order paid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET is_delivered = true,
		    delivered_at = $2,
		    status = $3,
		    updated_at = now()
		WHERE id = $1`,
		id, deliveredAt, order.StatusDelivered.String())
	if err != nil {
		return infra.WrapRepoErr("failed to mark order delivered", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
