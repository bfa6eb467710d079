package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrOrderNotFound           = errs.New("order not found")
	ErrIllegalStatusTransition = errs.New("illegal order status transition")
	ErrOrderAlreadyPaid        = errs.New("order already paid")
	ErrOrderAlreadyDelivered   = errs.New("order already delivered")
)

// Stock at or below this after a decrement triggers an admin alert.
const lowStockThreshold = 5

type PlaceOrderItem struct {
	ProductID      uuid.UUID
	Qty            int32
	UnitPriceCents int64
}

type PlaceOrderInput struct {
	Items             []PlaceOrderItem
	ShippingAddress   string
	ShippingCostCents int64
	PaymentMethod     string
	TotalCents        int64
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next order.Status) error
	MarkPaid(ctx context.Context, id uuid.UUID, paymentRef *string) error
	MarkDelivered(ctx context.Context, id uuid.UUID) error
}

type orderUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier *adminNotifier
	clock    clock.Clock
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	gateway NotificationGateway,
	bus RealtimeBus,
	admins shared.AdminDirectory,
	clk clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:      uow,
		notifier: newAdminNotifier(gateway, bus, admins),
		clock:    clk,
	}
}

type lowStockAlert struct {
	ProductID uuid.UUID
	Name      string
	Remaining int32
}

// PlaceOrder decrements stock for every line item and inserts the order in a
// single transaction. Any failed decrement aborts the whole transaction, so a
// rejected order never leaves a partial stock change behind.
func (u *orderUseCaseImpl) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (uuid.UUID, error) {
	items := make([]order.Item, len(input.Items))
	for i, it := range input.Items {
		items[i] = order.Item{
			ProductID:      it.ProductID,
			Qty:            it.Qty,
			UnitPriceCents: it.UnitPriceCents,
		}
	}

	o, err := order.NewOrder(userID, items, order.Shipping{
		Address:   input.ShippingAddress,
		CostCents: input.ShippingCostCents,
	}, input.PaymentMethod, input.TotalCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var alerts []lowStockAlert
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, it := range o.Items() {
			if err := tx.Products().ConditionalDecrementStock(ctx, it.ProductID, it.Qty); err != nil {
				switch {
				case infra.IsKind(err, infra.KindNotFound):
					return errs.Mark(err, ErrProductNotFound)
				case infra.IsKind(err, infra.KindConflict):
					return errs.Mark(err, ErrInsufficientStock)
				default:
					return errs.Mark(err, ErrStoreUnavailable)
				}
			}
		}

		if _, err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}

		// One alert per product even when it appears on several line items.
		seen := make(map[uuid.UUID]struct{}, len(o.Items()))
		for _, it := range o.Items() {
			if _, dup := seen[it.ProductID]; dup {
				continue
			}
			seen[it.ProductID] = struct{}{}

			p, err := tx.Reads().ProductByID(ctx, it.ProductID)
			if err != nil {
				return errs.Mark(err, ErrStoreUnavailable)
			}
			if p.Stock <= lowStockThreshold {
				alerts = append(alerts, lowStockAlert{
					ProductID: p.ID,
					Name:      p.Name,
					Remaining: p.Stock,
				})
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	u.notifyOrderPlaced(o, alerts)

	return o.ID(), nil
}

func (u *orderUseCaseImpl) notifyOrderPlaced(o *order.Order, alerts []lowStockAlert) {
	event := OrderPlacedEvent{
		OrderID:    o.ID(),
		UserID:     o.UserID(),
		TotalCents: o.TotalCents(),
	}
	meta, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal order placed event", "error", err.Error())
		meta = []byte(`{}`)
	}
	u.notifier.broadcast(
		TopicOrderPlaced,
		"order",
		"New order placed",
		fmt.Sprintf("Order %s was placed", o.ID()),
		meta,
		event,
	)

	for _, a := range alerts {
		alertMeta, err := json.Marshal(a)
		if err != nil {
			slog.Warn("failed to marshal low stock alert", "error", err.Error())
			continue
		}
		u.notifier.broadcast(
			TopicJobNotification,
			"low_stock",
			"Low stock warning",
			fmt.Sprintf("Product %q has %d units left", a.Name, a.Remaining),
			alertMeta,
			a,
		)
	}
}

func (u *orderUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, next order.Status) error {
	var snap *shared.OrderSnapshot
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		snap, err = tx.Reads().OrderByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}

		if !order.CanTransition(snap.Status, next) {
			return errs.Wrap(ErrIllegalStatusTransition,
				fmt.Sprintf("cannot transition from %s to %s", snap.Status, next))
		}

		var deliveredAt *time.Time
		if next == order.StatusDelivered {
			now := u.clock.Now()
			deliveredAt = &now
		}
		if err := tx.Orders().SetStatus(ctx, id, next, deliveredAt); err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.notifyStatusChanged(snap, next)

	return nil
}

func (u *orderUseCaseImpl) notifyStatusChanged(snap *shared.OrderSnapshot, next order.Status) {
	event := OrderStatusChangedEvent{
		OrderID: snap.ID,
		UserID:  snap.UserID,
		From:    string(snap.Status),
		To:      string(next),
	}
	u.notifier.emit(TopicOrderStatusUpdate, event)

	meta, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal order status event", "error", err.Error())
		meta = []byte(`{}`)
	}
	u.notifier.notifyOne(snap.UserID, "order",
		"Order status updated",
		fmt.Sprintf("Order %s is now %s", snap.ID, next),
		meta)
}

func (u *orderUseCaseImpl) MarkPaid(ctx context.Context, id uuid.UUID, paymentRef *string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OrderByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}
		if snap.IsPaid {
			return ErrOrderAlreadyPaid
		}

		if err := tx.Orders().SetPaid(ctx, id, u.clock.Now(), paymentRef); err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		return nil
	})
}

func (u *orderUseCaseImpl) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OrderByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}
		if snap.IsDelivered {
			return ErrOrderAlreadyDelivered
		}

		if err := tx.Orders().SetDelivered(ctx, id, u.clock.Now()); err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		return nil
	})
}
