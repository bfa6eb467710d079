package repository

import (
	"context"
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the minimal snapshot reads commands validate against.
// It is bound to whatever DBTX it was built with, so the same code reads
// consistently inside a transaction and directly off the pool.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var p shared.ProductSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price_cents, stock, sale_price_cents, is_discount_active
		FROM products WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.SalePriceCents, &p.IsDiscountActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &p, nil
}

func (r *CommandReads) ScheduleByID(ctx context.Context, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, kind, value, start_time, end_time, status, original_price_cents
		FROM discount_schedules WHERE id = $1`,
		id)

	s, err := scanScheduleSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule", err)
	}
	return s, nil
}

func (r *CommandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	var o shared.OrderSnapshot
	var status string
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, status, is_paid, is_delivered
		FROM orders WHERE id = $1`,
		id).Scan(&o.ID, &o.UserID, &status, &o.IsPaid, &o.IsDelivered)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	o.Status = order.Status(status)
	return &o, nil
}

func (r *CommandReads) SchedulesDueForActivation(ctx context.Context, now time.Time) ([]*shared.ScheduleSnapshot, error) {
	return r.listSchedules(ctx, `
		SELECT id, product_id, kind, value, start_time, end_time, status, original_price_cents
		FROM discount_schedules
		WHERE status = 'pending' AND start_time <= $1
		ORDER BY start_time`,
		now)
}

func (r *CommandReads) SchedulesDueForExpiry(ctx context.Context, now time.Time) ([]*shared.ScheduleSnapshot, error) {
	return r.listSchedules(ctx, `
		SELECT id, product_id, kind, value, start_time, end_time, status, original_price_cents
		FROM discount_schedules
		WHERE status = 'active' AND end_time <= $1
		ORDER BY end_time`,
		now)
}

func (r *CommandReads) listSchedules(ctx context.Context, sql string, args ...any) ([]*shared.ScheduleSnapshot, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedules", err)
	}
	defer rows.Close()

	var schedules []*shared.ScheduleSnapshot
	for rows.Next() {
		s, err := scanScheduleSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule row", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate schedule rows", err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheduleSnapshot(row rowScanner) (*shared.ScheduleSnapshot, error) {
	var s shared.ScheduleSnapshot
	var kind, status string
	if err := row.Scan(
		&s.ID, &s.ProductID, &kind, &s.Value,
		&s.StartTime, &s.EndTime, &status, &s.OriginalPriceCents,
	); err != nil {
		return nil, err
	}

	parsedKind, err := discount.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	parsedStatus, err := discount.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	s.Kind = parsedKind
	s.Status = parsedStatus

	return &s, nil
}
