package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	Qty            int32     `json:"qty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	UserID            uuid.UUID           `json:"userId"`
	Items             []OrderItemResponse `json:"items"`
	Status            string              `json:"status"`
	TotalCents        int64               `json:"totalCents"`
	ShippingAddress   string              `json:"shippingAddress"`
	ShippingCostCents int64               `json:"shippingCostCents"`
	PaymentMethod     string              `json:"paymentMethod"`
	PaymentRef        *string             `json:"paymentRef,omitempty"`
	IsPaid            bool                `json:"isPaid"`
	PaidAt            *time.Time          `json:"paidAt,omitempty"`
	IsDelivered       bool                `json:"isDelivered"`
	DeliveredAt       *time.Time          `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"totalCents"`
	IsPaid      bool      `json:"isPaid"`
	IsDelivered bool      `json:"isDelivered"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PlaceOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromOrderListItem(v *queries.OrderListItem) (*OrderListResponse, error) {
	var resp OrderListResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}
