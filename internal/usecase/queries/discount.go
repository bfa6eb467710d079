package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ScheduleView struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Kind               string    `json:"kind"`
	Value              float64   `json:"value"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	Status             string    `json:"status"`
	OriginalPriceCents int64     `json:"original_price_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ScheduleListFilter struct {
	ProductID *uuid.UUID
	Status    *string
}

type DiscountQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	List(ctx context.Context, filter ScheduleListFilter, limit, offset int32) ([]*ScheduleView, error)
}

type ScheduleViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	FindWithFilter(ctx context.Context, filter ScheduleListFilter, limit, offset int32) ([]*ScheduleView, error)
}

type discountQueriesImpl struct {
	repo ScheduleViewRepo
}

func NewDiscountQueries(repo ScheduleViewRepo) DiscountQueries {
	return &discountQueriesImpl{repo: repo}
}

func (q *discountQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *discountQueriesImpl) List(ctx context.Context, filter ScheduleListFilter, limit, offset int32) ([]*ScheduleView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.repo.FindWithFilter(ctx, filter, limit, offset)
}
