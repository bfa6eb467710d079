package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("product name cannot be empty")
	ErrInvalidPrice = errors.New("price must be positive")
	ErrInvalidStock = errors.New("stock cannot be negative")
)

type Product struct {
	id               uuid.UUID
	name             string
	priceCents       int64
	stock            int32
	salePriceCents   int64
	isDiscountActive bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewProduct(id uuid.UUID, name string, priceCents int64, stock int32) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	return &Product{
		id:         id,
		name:       name,
		priceCents: priceCents,
		stock:      stock,
	}, nil
}

func ReconstructProduct(
	id uuid.UUID,
	name string,
	priceCents int64,
	stock int32,
	salePriceCents int64,
	isDiscountActive bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:               id,
		name:             name,
		priceCents:       priceCents,
		stock:            stock,
		salePriceCents:   salePriceCents,
		isDiscountActive: isDiscountActive,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (p *Product) HasStock(qty int32) bool {
	return p.stock >= qty
}

// EffectivePriceCents is the sale price while a discount is active,
// the list price otherwise.
func (p *Product) EffectivePriceCents() int64 {
	if p.isDiscountActive && p.salePriceCents > 0 {
		return p.salePriceCents
	}
	return p.priceCents
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) PriceCents() int64      { return p.priceCents }
func (p *Product) Stock() int32           { return p.stock }
func (p *Product) SalePriceCents() int64  { return p.salePriceCents }
func (p *Product) IsDiscountActive() bool { return p.isDiscountActive }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
