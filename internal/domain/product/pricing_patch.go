package product

import "storefront/internal/pkg/patch"

// Pricing is the mutable commercial state of a product.
type Pricing struct {
	PriceCents int64
	Stock      int32
}

// PricingPatch enumerates the optional fields of a partial pricing update.
// A nil field means "keep the current value".
type PricingPatch struct {
	PriceCents *int64
	Stock      *int32
}

func (pp PricingPatch) IsZero() bool {
	return pp.PriceCents == nil && pp.Stock == nil
}

// Apply merges the patch onto the current pricing. A supplied field always
// wins; absent fields keep the current value.
func (pp PricingPatch) Apply(cur Pricing) (Pricing, error) {
	next := Pricing{
		PriceCents: patch.Coalesce(pp.PriceCents, cur.PriceCents),
		Stock:      patch.Coalesce(pp.Stock, cur.Stock),
	}
	if next.PriceCents <= 0 {
		return Pricing{}, ErrInvalidPrice
	}
	if next.Stock < 0 {
		return Pricing{}, ErrInvalidStock
	}
	return next, nil
}
