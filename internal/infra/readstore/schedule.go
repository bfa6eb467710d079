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

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

func (r *ScheduleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ScheduleView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT s.id, s.product_id, p.name, s.kind, s.value,
		       s.start_time, s.end_time, s.status, s.original_price_cents,
		       s.created_at, s.updated_at
		FROM discount_schedules s
		JOIN products p ON p.id = s.product_id
		WHERE s.id = $1`,
		id)

	v, err := scanScheduleView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find schedule by ID", err)
	}
	return v, nil
}

func (r *ScheduleReadStore) FindWithFilter(ctx context.Context, filter queries.ScheduleListFilter, limit, offset int32) ([]*queries.ScheduleView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.product_id, p.name, s.kind, s.value,
		       s.start_time, s.end_time, s.status, s.original_price_cents,
		       s.created_at, s.updated_at
		FROM discount_schedules s
		JOIN products p ON p.id = s.product_id
		WHERE ($1::uuid IS NULL OR s.product_id = $1)
		  AND ($2::text IS NULL OR s.status = $2)
		ORDER BY s.start_time DESC, s.id
		LIMIT $3 OFFSET $4`,
		pgconv.UUIDPtrToPgtype(filter.ProductID), pgconv.StringPtrToPgtype(filter.Status),
		limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedules", err)
	}
	defer rows.Close()

	var result []*queries.ScheduleView
	for rows.Next() {
		v, err := scanScheduleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate schedule rows", err)
	}

	return result, nil
}

func scanScheduleView(row rowScanner) (*queries.ScheduleView, error) {
	var v queries.ScheduleView
	var value pgtype.Numeric
	var startTime, endTime, createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(
		&v.ID, &v.ProductID, &v.ProductName, &v.Kind, &value,
		&startTime, &endTime, &v.Status, &v.OriginalPriceCents,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	f, err := pgconv.Float64FromNumeric(value)
	if err != nil {
		return nil, err
	}
	v.Value = f
	v.StartTime = pgconv.TimeFromPgtype(startTime)
	v.EndTime = pgconv.TimeFromPgtype(endTime)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
