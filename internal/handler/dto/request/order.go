package request

import (
	"strings"

	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Qty            int32     `json:"qty" binding:"required,gt=0"`
	UnitPriceCents int64     `json:"unit_price_cents" binding:"gte=0"`
}

type PlaceOrderRequest struct {
	Items             []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress   string             `json:"shipping_address" binding:"required"`
	ShippingCostCents int64              `json:"shipping_cost_cents" binding:"gte=0"`
	PaymentMethod     string             `json:"payment_method" binding:"required"`
	TotalCents        int64              `json:"total_cents" binding:"required,gt=0"`
}

func (r PlaceOrderRequest) ToInput() commands.PlaceOrderInput {
	items := make([]commands.PlaceOrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.PlaceOrderItem{
			ProductID:      it.ProductID,
			Qty:            it.Qty,
			UnitPriceCents: it.UnitPriceCents,
		}
	}
	return commands.PlaceOrderInput{
		Items:             items,
		ShippingAddress:   strings.TrimSpace(r.ShippingAddress),
		ShippingCostCents: r.ShippingCostCents,
		PaymentMethod:     strings.TrimSpace(r.PaymentMethod),
		TotalCents:        r.TotalCents,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MarkOrderPaidRequest struct {
	PaymentRef *string `json:"payment_ref,omitempty"`
}

func (r MarkOrderPaidRequest) GetPaymentRef() *string {
	if r.PaymentRef == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PaymentRef)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
