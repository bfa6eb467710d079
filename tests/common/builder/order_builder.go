//go:build unit || e2e

package builder

import (
	"time"

	domorder "storefront/internal/domain/order"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	UserID            uuid.UUID
	ProductID         uuid.UUID
	ProductName       string
	Qty               int32
	UnitPriceCents    int64
	ShippingAddress   string
	ShippingCostCents int64
	PaymentMethod     string
	TotalCents        int64
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		UserID:            uuid.New(),
		ProductID:         uuid.New(),
		ProductName:       "Mechanical Keyboard",
		Qty:               2,
		UnitPriceCents:    9900,
		ShippingAddress:   "1 Main St, Springfield",
		ShippingCostCents: 500,
		PaymentMethod:     "card",
		TotalCents:        20300,
		Status:            string(domorder.StatusPending),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *OrderBuilder) BuildPlaceRequestDTO() reqdto.PlaceOrderRequest {
	return reqdto.PlaceOrderRequest{
		Items: []reqdto.OrderItemRequest{
			{ProductID: b.ProductID, Qty: b.Qty, UnitPriceCents: b.UnitPriceCents},
		},
		ShippingAddress:   b.ShippingAddress,
		ShippingCostCents: b.ShippingCostCents,
		PaymentMethod:     b.PaymentMethod,
		TotalCents:        b.TotalCents,
	}
}

func (b *OrderBuilder) BuildViewQuery() *queries.OrderView {
	return &queries.OrderView{
		ID:     uuid.New(),
		UserID: b.UserID,
		Items: []queries.OrderItemView{
			{ProductID: b.ProductID, ProductName: b.ProductName, Qty: b.Qty, UnitPriceCents: b.UnitPriceCents},
		},
		Status:            b.Status,
		TotalCents:        b.TotalCents,
		ShippingAddress:   b.ShippingAddress,
		ShippingCostCents: b.ShippingCostCents,
		PaymentMethod:     b.PaymentMethod,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *OrderBuilder) BuildListItem() *queries.OrderListItem {
	return &queries.OrderListItem{
		ID:         uuid.New(),
		UserID:     b.UserID,
		Status:     b.Status,
		TotalCents: b.TotalCents,
		CreatedAt:  b.CreatedAt,
	}
}

func (b *OrderBuilder) BuildSnapshot() *shared.OrderSnapshot {
	return &shared.OrderSnapshot{
		ID:     uuid.New(),
		UserID: b.UserID,
		Status: domorder.Status(b.Status),
	}
}
