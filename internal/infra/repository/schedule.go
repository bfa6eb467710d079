package repository

import (
	"context"
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(dbtx db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx}
}

// Create persists a pending schedule. The table's range-exclusion
// constraint is the authoritative overlap guard: if a concurrent create
// slipped past the application-level probe, the insert fails with an
// exclusion violation, which classifies as a conflict.
func (r *ScheduleRepository) Create(ctx context.Context, s *discount.Schedule) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO discount_schedules (
			id, product_id, kind, value, start_time, end_time,
			status, original_price_cents, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID(), s.ProductID(), s.Discount().Kind().String(), s.Discount().Value(),
		s.StartTime(), s.EndTime(), s.Status().String(),
		s.OriginalPriceCents(), pgconv.UUIDPtrToPgtype(s.CreatedBy()))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create discount schedule", err)
	}

	return s.ID(), nil
}

// TransitionStatus applies a conditional update keyed on the expected
// current status. false means another writer got there first; the caller
// decides whether that is a skip or a surfaced conflict.
func (r *ScheduleRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to discount.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE discount_schedules
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition schedule status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ScheduleRepository) HasOverlapping(ctx context.Context, productID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM discount_schedules
			WHERE product_id = $1
			  AND status IN ('pending', 'active')
			  AND start_time < $3
			  AND $2 < end_time
		)`,
		productID, start, end).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping schedules", err)
	}
	return exists, nil
}
