package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PriceCents       int64     `json:"priceCents"`
	Stock            int32     `json:"stock"`
	SalePriceCents   int64     `json:"salePriceCents"`
	IsDiscountActive bool      `json:"isDiscountActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromProductView(v *queries.ProductView) (*ProductResponse, error) {
	var resp ProductResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}
