package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrScheduleNotFound     = errs.New("discount schedule not found")
	ErrScheduleOverlap      = errs.New("overlapping discount schedule exists")
	ErrScheduleCompleted    = errs.New("discount schedule already completed")
	ErrScheduleStateChanged = errs.New("discount schedule state changed concurrently")
)

type CreateScheduleInput struct {
	ProductID uuid.UUID
	Kind      discount.Kind
	Value     float64
	StartTime time.Time
	EndTime   time.Time
}

type DiscountCommands interface {
	CreateSchedule(ctx context.Context, input CreateScheduleInput, createdBy *uuid.UUID) (uuid.UUID, error)
	CancelSchedule(ctx context.Context, id uuid.UUID) error
	// ActivateDue flips every pending schedule whose start time has passed to
	// active and applies its sale price. Returns the number activated.
	ActivateDue(ctx context.Context) (int, error)
	// ExpireDue flips every active schedule whose end time has passed to
	// completed and restores the product's regular price. Returns the number
	// expired.
	ExpireDue(ctx context.Context) (int, error)
}

type discountUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier *adminNotifier
	clock    clock.Clock
}

func NewDiscountUseCase(
	uow shared.UnitOfWork,
	gateway NotificationGateway,
	bus RealtimeBus,
	admins shared.AdminDirectory,
	clk clock.Clock,
) DiscountCommands {
	return &discountUseCaseImpl{
		uow:      uow,
		notifier: newAdminNotifier(gateway, bus, admins),
		clock:    clk,
	}
}

// CreateSchedule validates the interval and the no-overlap rule, then inserts
// a pending schedule. The application-level overlap probe gives a clean error
// for the common case; the table's exclusion constraint settles races the
// probe cannot see.
func (u *discountUseCaseImpl) CreateSchedule(ctx context.Context, input CreateScheduleInput, createdBy *uuid.UUID) (uuid.UUID, error) {
	d, err := discount.NewDiscount(input.Kind, input.Value)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var scheduleID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Reads().ProductByID(ctx, input.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}

		s, err := discount.NewSchedule(
			input.ProductID, d,
			input.StartTime, input.EndTime,
			u.clock.Now(), p.PriceCents, createdBy,
		)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		overlapping, err := tx.Schedules().HasOverlapping(ctx, input.ProductID, input.StartTime, input.EndTime)
		if err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		if overlapping {
			return ErrScheduleOverlap
		}

		id, err := tx.Schedules().Create(ctx, s)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrScheduleOverlap)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}
		scheduleID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return scheduleID, nil
}

// CancelSchedule is idempotent for already-cancelled schedules. Cancelling an
// active schedule restores the product's regular price in the same
// transaction as the status flip, so a lost race rolls both back.
func (u *discountUseCaseImpl) CancelSchedule(ctx context.Context, id uuid.UUID) error {
	var wasActive bool
	var productID uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ScheduleByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrScheduleNotFound)
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}

		switch snap.Status {
		case discount.StatusCancelled:
			return nil
		case discount.StatusCompleted:
			return ErrScheduleCompleted
		case discount.StatusActive:
			if err := tx.Products().ClearDiscountPricing(ctx, snap.ProductID); err != nil {
				return errs.Mark(err, ErrStoreUnavailable)
			}
			wasActive = true
			productID = snap.ProductID
		case discount.StatusPending:
		}

		ok, err := tx.Schedules().TransitionStatus(ctx, id, snap.Status, discount.StatusCancelled)
		if err != nil {
			return errs.Mark(err, ErrStoreUnavailable)
		}
		if !ok {
			return ErrScheduleStateChanged
		}
		return nil
	})
	if err != nil {
		return err
	}

	if wasActive {
		u.emitDiscountEnded(ctx, id, productID)
	}
	return nil
}

func (u *discountUseCaseImpl) ActivateDue(ctx context.Context) (int, error) {
	now := u.clock.Now()
	due, err := u.uow.Reads().SchedulesDueForActivation(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, ErrStoreUnavailable)
	}

	activated := 0
	for _, s := range due {
		started, err := u.activateOne(ctx, s)
		if err != nil {
			slog.Error("failed to activate discount schedule",
				"schedule_id", s.ID.String(),
				"product_id", s.ProductID.String(),
				"error", err.Error())
			continue
		}
		if started != nil {
			activated++
			u.notifyDiscountStarted(*started)
		}
	}

	return activated, nil
}

// activateOne runs a single schedule's activation in its own transaction.
// The conditional transition is the claim: a schedule another instance
// already activated (or an admin cancelled) loses the conditional update and
// is skipped without touching the product.
func (u *discountUseCaseImpl) activateOne(ctx context.Context, s *shared.ScheduleSnapshot) (*DiscountStartedEvent, error) {
	d, err := discount.NewDiscount(s.Kind, s.Value)
	if err != nil {
		return nil, err
	}

	var event *DiscountStartedEvent
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Sale price is derived from the live price, not the price captured
		// at schedule creation.
		p, err := tx.Reads().ProductByID(ctx, s.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// The product vanished since the schedule was created. Retire
				// the schedule so it stops showing up in every sweep.
				slog.Warn("cancelling discount schedule for missing product",
					"schedule_id", s.ID.String(),
					"product_id", s.ProductID.String())
				_, err := tx.Schedules().TransitionStatus(ctx, s.ID, discount.StatusPending, discount.StatusCancelled)
				return err
			}
			return err
		}

		ok, err := tx.Schedules().TransitionStatus(ctx, s.ID, discount.StatusPending, discount.StatusActive)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		salePrice := d.SalePrice(p.PriceCents)

		if err := tx.Products().ApplyDiscountPricing(ctx, s.ProductID, salePrice); err != nil {
			return err
		}

		event = &DiscountStartedEvent{
			ScheduleID:     s.ID,
			ProductID:      s.ProductID,
			ProductName:    p.Name,
			SalePriceCents: salePrice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (u *discountUseCaseImpl) ExpireDue(ctx context.Context) (int, error) {
	now := u.clock.Now()
	due, err := u.uow.Reads().SchedulesDueForExpiry(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, ErrStoreUnavailable)
	}

	expired := 0
	for _, s := range due {
		ended, err := u.expireOne(ctx, s)
		if err != nil {
			slog.Error("failed to expire discount schedule",
				"schedule_id", s.ID.String(),
				"product_id", s.ProductID.String(),
				"error", err.Error())
			continue
		}
		if ended != nil {
			expired++
			u.notifyDiscountEnded(*ended)
		}
	}

	return expired, nil
}

func (u *discountUseCaseImpl) expireOne(ctx context.Context, s *shared.ScheduleSnapshot) (*DiscountEndedEvent, error) {
	var event *DiscountEndedEvent
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Schedules().TransitionStatus(ctx, s.ID, discount.StatusActive, discount.StatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		p, err := tx.Reads().ProductByID(ctx, s.ProductID)
		if err != nil {
			return err
		}

		if err := tx.Products().ClearDiscountPricing(ctx, s.ProductID); err != nil {
			return err
		}

		event = &DiscountEndedEvent{
			ScheduleID:  s.ID,
			ProductID:   s.ProductID,
			ProductName: p.Name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (u *discountUseCaseImpl) notifyDiscountStarted(event DiscountStartedEvent) {
	meta, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal discount started event", "error", err.Error())
		meta = []byte(`{}`)
	}
	u.notifier.broadcast(
		TopicDiscountStarted,
		"discount",
		"Discount started",
		fmt.Sprintf("Promotion started for %q", event.ProductName),
		meta,
		event,
	)
}

func (u *discountUseCaseImpl) notifyDiscountEnded(event DiscountEndedEvent) {
	meta, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal discount ended event", "error", err.Error())
		meta = []byte(`{}`)
	}
	u.notifier.broadcast(
		TopicDiscountEnded,
		"discount",
		"Discount ended",
		fmt.Sprintf("Promotion ended for %q", event.ProductName),
		meta,
		event,
	)
}

func (u *discountUseCaseImpl) emitDiscountEnded(ctx context.Context, scheduleID, productID uuid.UUID) {
	p, err := u.uow.Reads().ProductByID(ctx, productID)
	name := ""
	if err != nil {
		slog.Warn("failed to resolve product for cancel notification",
			"product_id", productID.String(),
			"error", err.Error())
	} else {
		name = p.Name
	}
	u.notifyDiscountEnded(DiscountEndedEvent{
		ScheduleID:  scheduleID,
		ProductID:   productID,
		ProductName: name,
	})
}
