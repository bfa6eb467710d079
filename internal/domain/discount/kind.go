package discount

import (
	"errors"
	"math"
)

var (
	ErrUnknownKind       = errors.New("unknown discount kind")
	ErrInvalidValue      = errors.New("invalid discount value")
	ErrPercentOutOfRange = errors.New("percentage must be between 0 and 100")
)

// Kind discriminates how a discount value is interpreted.
type Kind uint8

const (
	KindPercentage Kind = iota + 1
	KindFixed
)

func ParseKind(s string) (Kind, error) {
	switch s {
	case "percentage":
		return KindPercentage, nil
	case "fixed":
		return KindFixed, nil
	}
	return 0, ErrUnknownKind
}

func (k Kind) String() string {
	switch k {
	case KindPercentage:
		return "percentage"
	case KindFixed:
		return "fixed"
	}
	return "unknown"
}

// Discount is a tagged variant: the meaning of value depends on the kind.
// For KindPercentage, value is a percent in (0, 100]; for KindFixed, value
// is an absolute amount in cents.
type Discount struct {
	kind  Kind
	value float64
}

func NewDiscount(kind Kind, value float64) (Discount, error) {
	switch kind {
	case KindPercentage:
		if value <= 0 || value > 100 {
			return Discount{}, ErrPercentOutOfRange
		}
	case KindFixed:
		if value <= 0 {
			return Discount{}, ErrInvalidValue
		}
	default:
		return Discount{}, ErrUnknownKind
	}
	return Discount{kind: kind, value: value}, nil
}

// SalePrice computes the discounted price in cents, clamped at zero and
// rounded to the currency's smallest unit.
func (d Discount) SalePrice(priceCents int64) int64 {
	var sale float64
	switch d.kind {
	case KindPercentage:
		sale = float64(priceCents) * (1 - d.value/100)
	case KindFixed:
		sale = float64(priceCents) - d.value
	default:
		return priceCents
	}
	if sale < 0 {
		return 0
	}
	return int64(math.Round(sale))
}

func (d Discount) Kind() Kind     { return d.kind }
func (d Discount) Value() float64 { return d.value }
