package commands

import (
	"context"

	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoFieldsToUpdate = errs.New("no fields to update")

type ProductCommands interface {
	// UpdatePricing merges a partial pricing patch onto the product's current
	// values. Sale price and discount flag are owned by the discount sweeps
	// and are never touched here.
	UpdatePricing(ctx context.Context, id uuid.UUID, patch product.PricingPatch) error
}

type productUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewProductUseCase(uow shared.UnitOfWork) ProductCommands {
	return &productUseCaseImpl{uow: uow}
}

func (u *productUseCaseImpl) UpdatePricing(ctx context.Context, id uuid.UUID, patch product.PricingPatch) error {
	if patch.IsZero() {
		return ErrNoFieldsToUpdate
	}

	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Reads().ProductByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}

		merged, err := patch.Apply(product.Pricing{
			PriceCents: p.PriceCents,
			Stock:      p.Stock,
		})
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Products().UpdatePricing(ctx, id, merged); err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		return nil
	})
}
