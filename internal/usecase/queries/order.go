package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Qty            int32     `json:"qty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type OrderView struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Items              []OrderItemView `json:"items"`
	Status             string          `json:"status"`
	TotalCents         int64           `json:"total_cents"`
	ShippingAddress    string          `json:"shipping_address"`
	ShippingCostCents  int64           `json:"shipping_cost_cents"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentRef         *string         `json:"payment_ref,omitempty"`
	IsPaid             bool            `json:"is_paid"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	IsDelivered        bool            `json:"is_delivered"`
	DeliveredAt        *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	IsPaid      bool      `json:"is_paid"`
	IsDelivered bool      `json:"is_delivered"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderListFilter struct {
	UserID *uuid.UUID
	Status *string
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, filter OrderListFilter, limit, offset int32) ([]*OrderListItem, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindWithFilter(ctx context.Context, filter OrderListFilter, limit, offset int32) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *orderQueriesImpl) List(ctx context.Context, filter OrderListFilter, limit, offset int32) ([]*OrderListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.repo.FindWithFilter(ctx, filter, limit, offset)
}
