package commands

import (
	"context"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// Errors shared across command services
var (
	ErrProductNotFound  = errs.New("product not found")
	ErrDomainValidation = errs.New("domain validation error")
	ErrStoreUnavailable = errs.New("store unavailable")
)

// Realtime topics pushed to connected storefront clients
const (
	TopicOrderPlaced       = "order_placed"
	TopicOrderStatusUpdate = "order_status_update"
	TopicDiscountStarted   = "discount_started"
	TopicDiscountEnded     = "discount_ended"
	TopicJobNotification   = "job_notification"
)

// NotificationGateway persists a notification for a recipient and pushes it
// over the realtime channel in one call.
type NotificationGateway interface {
	Notify(ctx context.Context, recipientID uuid.UUID, kind, title, body string, meta []byte, actionURL *string) error
}

// RealtimeBus broadcasts an event to every connected client subscribed to the
// topic. Delivery is best-effort.
type RealtimeBus interface {
	Emit(ctx context.Context, topic string, payload any) error
}

type OrderPlacedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalCents int64     `json:"total_cents"`
}

type OrderStatusChangedEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}

type DiscountStartedEvent struct {
	ScheduleID     uuid.UUID `json:"schedule_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	SalePriceCents int64     `json:"sale_price_cents"`
}

type DiscountEndedEvent struct {
	ScheduleID  uuid.UUID `json:"schedule_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
}
