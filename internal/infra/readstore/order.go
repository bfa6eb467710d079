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

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var v queries.OrderView
	var paymentRef pgtype.Text
	var paidAt, deliveredAt, createdAt, updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, status, total_cents, shipping_address,
		       shipping_cost_cents, payment_method, payment_ref,
		       is_paid, paid_at, is_delivered, delivered_at,
		       created_at, updated_at
		FROM orders WHERE id = $1`,
		id).Scan(
		&v.ID, &v.UserID, &v.Status, &v.TotalCents, &v.ShippingAddress,
		&v.ShippingCostCents, &v.PaymentMethod, &paymentRef,
		&v.IsPaid, &paidAt, &v.IsDelivered, &deliveredAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	v.PaymentRef = pgconv.StringPtrFromPgtype(paymentRef)
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	v.DeliveredAt = pgconv.TimePtrFromPgtype(deliveredAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Items = items

	return &v, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.product_id, p.name, oi.qty, oi.unit_price_cents
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY p.name`,
		orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Qty, &item.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order item rows", err)
	}

	return items, nil
}

func (r *OrderReadStore) FindWithFilter(ctx context.Context, filter queries.OrderListFilter, limit, offset int32) ([]*queries.OrderListItem, error) {
	// NULL-guarded filter parameters keep this a single prepared statement
	// regardless of which filters are set.
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, status, total_cents, is_paid, is_delivered, created_at
		FROM orders
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`,
		pgconv.UUIDPtrToPgtype(filter.UserID), pgconv.StringPtrToPgtype(filter.Status),
		limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Status, &item.TotalCents,
			&item.IsPaid, &item.IsDelivered, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	return result, nil
}
