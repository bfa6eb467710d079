//go:build unit

package commands_test

import (
	"context"
	"testing"

	"storefront/internal/domain/product"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ProductCommandsTestSuite struct {
	suite.Suite
	store *fakeStore
	cmd   commands.ProductCommands

	productID uuid.UUID
}

func (s *ProductCommandsTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.productID = uuid.New()
	s.store.addProduct(shared.ProductSnapshot{
		ID: s.productID, Name: "Keyboard", PriceCents: 9900, Stock: 10,
	})
	s.cmd = commands.NewProductUseCase(newFakeUoW(s.store))
}

func TestProductCommandsSuite(t *testing.T) {
	suite.Run(t, new(ProductCommandsTestSuite))
}

func int64Ptr(v int64) *int64 { return &v }
func int32Ptr(v int32) *int32 { return &v }

func (s *ProductCommandsTestSuite) TestUpdatePricing() {
	s.Run("success: updates only the supplied fields", func() {
		s.SetupTest()

		err := s.cmd.UpdatePricing(context.Background(), s.productID, product.PricingPatch{
			PriceCents: int64Ptr(12000),
		})

		s.Require().NoError(err)
		s.Equal(int64(12000), s.store.products[s.productID].PriceCents)
		s.Equal(int32(10), s.store.products[s.productID].Stock)
	})

	s.Run("success: stock can be set to zero", func() {
		s.SetupTest()

		err := s.cmd.UpdatePricing(context.Background(), s.productID, product.PricingPatch{
			Stock: int32Ptr(0),
		})

		s.Require().NoError(err)
		s.Equal(int32(0), s.store.products[s.productID].Stock)
	})

	s.Run("error: empty patch", func() {
		s.SetupTest()

		err := s.cmd.UpdatePricing(context.Background(), s.productID, product.PricingPatch{})

		s.Require().ErrorIs(err, commands.ErrNoFieldsToUpdate)
	})

	s.Run("error: non-positive price fails validation", func() {
		s.SetupTest()

		err := s.cmd.UpdatePricing(context.Background(), s.productID, product.PricingPatch{
			PriceCents: int64Ptr(0),
		})

		s.Require().ErrorIs(err, commands.ErrDomainValidation)
		s.Equal(int64(9900), s.store.products[s.productID].PriceCents)
	})

	s.Run("error: unknown product", func() {
		s.SetupTest()

		err := s.cmd.UpdatePricing(context.Background(), uuid.New(), product.PricingPatch{
			Stock: int32Ptr(5),
		})

		s.Require().ErrorIs(err, commands.ErrProductNotFound)
	})
}
