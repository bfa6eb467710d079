package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be a positive integer")
	ErrInvalidUnitPrice   = errors.New("item unit price cannot be negative")
	ErrEmptyAddress       = errors.New("shipping address cannot be empty")
	ErrEmptyPaymentMethod = errors.New("payment method cannot be empty")
	ErrIllegalTransition  = errors.New("illegal order status transition")
	ErrAlreadyPaid        = errors.New("order is already paid")
	ErrAlreadyDelivered   = errors.New("order is already delivered")
)

// Item is a line item with the unit price snapshotted at placement time.
type Item struct {
	ProductID      uuid.UUID
	Qty            int32
	UnitPriceCents int64
}

type Shipping struct {
	Address   string
	CostCents int64
}

type Order struct {
	id            uuid.UUID
	userID        uuid.UUID
	items         []Item
	totalCents    int64
	shipping      Shipping
	paymentMethod string
	paymentRef    *string
	status        Status
	isPaid        bool
	paidAt        *time.Time
	isDelivered   bool
	deliveredAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewOrder validates the order shape only. Stock availability is checked
// against the store at commit time, not here. The caller-supplied total is
// accepted as-is; it is not derived from the line items.
func NewOrder(
	userID uuid.UUID,
	items []Item,
	shipping Shipping,
	paymentMethod string,
	totalCents int64,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range items {
		if it.Qty <= 0 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitPriceCents < 0 {
			return nil, ErrInvalidUnitPrice
		}
	}
	if shipping.Address == "" {
		return nil, ErrEmptyAddress
	}
	if paymentMethod == "" {
		return nil, ErrEmptyPaymentMethod
	}

	return &Order{
		id:            uuid.New(),
		userID:        userID,
		items:         items,
		totalCents:    totalCents,
		shipping:      shipping,
		paymentMethod: paymentMethod,
		status:        StatusPending,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	items []Item,
	totalCents int64,
	shipping Shipping,
	paymentMethod string,
	paymentRef *string,
	status Status,
	isPaid bool,
	paidAt *time.Time,
	isDelivered bool,
	deliveredAt *time.Time,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		userID:        userID,
		items:         items,
		totalCents:    totalCents,
		shipping:      shipping,
		paymentMethod: paymentMethod,
		paymentRef:    paymentRef,
		status:        status,
		isPaid:        isPaid,
		paidAt:        paidAt,
		isDelivered:   isDelivered,
		deliveredAt:   deliveredAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (o *Order) TransitionTo(next Status) error {
	if !CanTransition(o.status, next) {
		return ErrIllegalTransition
	}
	o.status = next
	return nil
}

// MarkPaid sets the payment flag. It is independent of the status machine
// and never re-validates stock.
func (o *Order) MarkPaid(now time.Time, paymentRef *string) error {
	if o.isPaid {
		return ErrAlreadyPaid
	}
	o.isPaid = true
	o.paidAt = &now
	o.paymentRef = paymentRef
	return nil
}

func (o *Order) MarkDelivered(now time.Time) error {
	if o.isDelivered {
		return ErrAlreadyDelivered
	}
	o.isDelivered = true
	o.deliveredAt = &now
	o.status = StatusDelivered
	return nil
}

func (o *Order) ID() uuid.UUID           { return o.id }
func (o *Order) UserID() uuid.UUID       { return o.userID }
func (o *Order) Items() []Item           { return o.items }
func (o *Order) TotalCents() int64       { return o.totalCents }
func (o *Order) Shipping() Shipping      { return o.shipping }
func (o *Order) PaymentMethod() string   { return o.paymentMethod }
func (o *Order) PaymentRef() *string     { return o.paymentRef }
func (o *Order) Status() Status          { return o.status }
func (o *Order) IsPaid() bool            { return o.isPaid }
func (o *Order) PaidAt() *time.Time      { return o.paidAt }
func (o *Order) IsDelivered() bool       { return o.isDelivered }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
