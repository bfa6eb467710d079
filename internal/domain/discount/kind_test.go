//go:build unit

package discount_test

import (
	"testing"

	"storefront/internal/domain/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscount(t *testing.T) {
	cases := []struct {
		name  string
		kind  discount.Kind
		value float64
		errIs error
	}{
		{name: "percentage in range OK", kind: discount.KindPercentage, value: 25},
		{name: "percentage upper bound OK (100)", kind: discount.KindPercentage, value: 100},
		{name: "percentage zero NG", kind: discount.KindPercentage, value: 0, errIs: discount.ErrPercentOutOfRange},
		{name: "percentage above 100 NG", kind: discount.KindPercentage, value: 100.5, errIs: discount.ErrPercentOutOfRange},
		{name: "percentage negative NG", kind: discount.KindPercentage, value: -5, errIs: discount.ErrPercentOutOfRange},
		{name: "fixed positive OK", kind: discount.KindFixed, value: 500},
		{name: "fixed zero NG", kind: discount.KindFixed, value: 0, errIs: discount.ErrInvalidValue},
		{name: "unknown kind NG", kind: discount.Kind(99), value: 10, errIs: discount.ErrUnknownKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := discount.NewDiscount(tc.kind, tc.value)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.kind, d.Kind())
			assert.Equal(t, tc.value, d.Value())
		})
	}
}

func TestSalePrice(t *testing.T) {
	cases := []struct {
		name       string
		kind       discount.Kind
		value      float64
		priceCents int64
		expect     int64
	}{
		{name: "25 percent off 10000", kind: discount.KindPercentage, value: 25, priceCents: 10000, expect: 7500},
		{name: "100 percent off is free", kind: discount.KindPercentage, value: 100, priceCents: 10000, expect: 0},
		{name: "percentage rounds to nearest cent", kind: discount.KindPercentage, value: 33, priceCents: 999, expect: 669},
		{name: "fixed amount off", kind: discount.KindFixed, value: 1500, priceCents: 10000, expect: 8500},
		{name: "fixed larger than price clamps to zero", kind: discount.KindFixed, value: 20000, priceCents: 10000, expect: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := discount.NewDiscount(tc.kind, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, d.SalePrice(tc.priceCents))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := discount.ParseKind("percentage")
	require.NoError(t, err)
	assert.Equal(t, discount.KindPercentage, k)

	k, err = discount.ParseKind("fixed")
	require.NoError(t, err)
	assert.Equal(t, discount.KindFixed, k)

	_, err = discount.ParseKind("bogus")
	assert.ErrorIs(t, err, discount.ErrUnknownKind)
}
