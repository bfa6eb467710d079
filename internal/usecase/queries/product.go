package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ProductView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PriceCents       int64     `json:"price_cents"`
	Stock            int32     `json:"stock"`
	SalePriceCents   int64     `json:"sale_price_cents"`
	IsDiscountActive bool      `json:"is_discount_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, limit, offset int32) ([]*ProductView, error)
}

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindPage(ctx context.Context, limit, offset int32) ([]*ProductView, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *productQueriesImpl) List(ctx context.Context, limit, offset int32) ([]*ProductView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.repo.FindPage(ctx, limit, offset)
}
