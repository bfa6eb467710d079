//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	Name             string
	PriceCents       int64
	Stock            int32
	SalePriceCents   int64
	IsDiscountActive bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewProductBuilder() *ProductBuilder {
	now := time.Now()
	return &ProductBuilder{
		Name:       "Mechanical Keyboard",
		PriceCents: 9900,
		Stock:      10,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ProductBuilder) BuildViewQuery() *queries.ProductView {
	return &queries.ProductView{
		ID:               uuid.New(),
		Name:             b.Name,
		PriceCents:       b.PriceCents,
		Stock:            b.Stock,
		SalePriceCents:   b.SalePriceCents,
		IsDiscountActive: b.IsDiscountActive,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *ProductBuilder) BuildSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:               uuid.New(),
		Name:             b.Name,
		PriceCents:       b.PriceCents,
		Stock:            b.Stock,
		SalePriceCents:   b.SalePriceCents,
		IsDiscountActive: b.IsDiscountActive,
	}
}
