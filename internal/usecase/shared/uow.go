package shared

import (
	"context"
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"

	"github.com/google/uuid"
)

// UnitOfWork is the transaction boundary for multi-document writes. Sweep
// transitions run one schedule per transaction so that interrupting a sweep
// between schedules leaves a consistent state.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: command-side reads outside any transaction
	Reads() CommandReads
}

type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	Schedules() ScheduleRepository
	Reads() CommandReads
}

// CommandReads are minimal snapshot reads used for command validation.
type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ScheduleByID(ctx context.Context, id uuid.UUID) (*ScheduleSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	SchedulesDueForActivation(ctx context.Context, now time.Time) ([]*ScheduleSnapshot, error)
	SchedulesDueForExpiry(ctx context.Context, now time.Time) ([]*ScheduleSnapshot, error)
}

// ProductRepository is the ProductStockStore contract: every method is a
// single conditional statement so racing writers coordinate purely through
// the store.
type ProductRepository interface {
	// ConditionalDecrementStock decrements stock by qty only if the stock
	// precondition still holds at commit time. A failed precondition
	// surfaces as a Conflict-kind repository error, a missing product as
	// NotFound.
	ConditionalDecrementStock(ctx context.Context, productID uuid.UUID, qty int32) error
	// ApplyDiscountPricing sets the sale price and activation flag without
	// touching any other field.
	ApplyDiscountPricing(ctx context.Context, productID uuid.UUID, salePriceCents int64) error
	// ClearDiscountPricing resets the sale price and activation flag.
	ClearDiscountPricing(ctx context.Context, productID uuid.UUID) error
	// UpdatePricing writes merged price/stock values, bypassing validation
	// of unrelated fields.
	UpdatePricing(ctx context.Context, productID uuid.UUID, pricing product.Pricing) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) (uuid.UUID, error)
	SetStatus(ctx context.Context, id uuid.UUID, status order.Status, deliveredAt *time.Time) error
	SetPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, paymentRef *string) error
	SetDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *discount.Schedule) (uuid.UUID, error)
	// TransitionStatus performs a conditional update keyed on the expected
	// current status. It reports false when the schedule was not in the
	// expected status, which is how a losing writer discovers the race.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to discount.Status) (bool, error)
	HasOverlapping(ctx context.Context, productID uuid.UUID, start, end time.Time) (bool, error)
}

type JobRepository interface {
	DuePending(ctx context.Context, now time.Time) ([]*JobSnapshot, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to JobStatus) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, recipientID uuid.UUID, kind, title, body string, meta []byte, actionURL *string) error
}

type AdminDirectory interface {
	AdminIDs(ctx context.Context) ([]uuid.UUID, error)
}
