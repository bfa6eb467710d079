package request

import (
	"storefront/internal/domain/product"
)

// UpdateProductPricingRequest is a partial update: absent fields keep their
// current values.
type UpdateProductPricingRequest struct {
	PriceCents *int64 `json:"price_cents,omitempty" binding:"omitempty,gt=0"`
	Stock      *int32 `json:"stock,omitempty" binding:"omitempty,gte=0"`
}

func (r UpdateProductPricingRequest) ToPatch() product.PricingPatch {
	return product.PricingPatch{
		PriceCents: r.PriceCents,
		Stock:      r.Stock,
	}
}
