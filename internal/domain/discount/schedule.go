package discount

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInterval = errors.New("invalid schedule interval")

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant, including full containment.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type Schedule struct {
	id                 uuid.UUID
	productID          uuid.UUID
	discount           Discount
	startTime          time.Time
	endTime            time.Time
	status             Status
	originalPriceCents int64
	createdBy          *uuid.UUID
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSchedule creates a pending schedule. originalPriceCents is the product
// price at creation time, kept for auditing only; activation always reads
// the live price.
func NewSchedule(
	productID uuid.UUID,
	d Discount,
	startTime, endTime time.Time,
	now time.Time,
	originalPriceCents int64,
	createdBy *uuid.UUID,
) (*Schedule, error) {
	if !startTime.Before(endTime) {
		return nil, ErrInvalidInterval
	}
	if !endTime.After(now) {
		return nil, ErrInvalidInterval
	}

	return &Schedule{
		id:                 uuid.New(),
		productID:          productID,
		discount:           d,
		startTime:          startTime,
		endTime:            endTime,
		status:             StatusPending,
		originalPriceCents: originalPriceCents,
		createdBy:          createdBy,
	}, nil
}

func ReconstructSchedule(
	id, productID uuid.UUID,
	d Discount,
	startTime, endTime time.Time,
	status Status,
	originalPriceCents int64,
	createdBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Schedule {
	return &Schedule{
		id:                 id,
		productID:          productID,
		discount:           d,
		startTime:          startTime,
		endTime:            endTime,
		status:             status,
		originalPriceCents: originalPriceCents,
		createdBy:          createdBy,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (s *Schedule) DueForActivation(now time.Time) bool {
	return s.status == StatusPending && !s.startTime.After(now)
}

func (s *Schedule) DueForExpiry(now time.Time) bool {
	return s.status == StatusActive && !s.endTime.After(now)
}

func (s *Schedule) OverlapsWith(other *Schedule) bool {
	return s.productID == other.productID &&
		Overlaps(s.startTime, s.endTime, other.startTime, other.endTime)
}

func (s *Schedule) ID() uuid.UUID             { return s.id }
func (s *Schedule) ProductID() uuid.UUID      { return s.productID }
func (s *Schedule) Discount() Discount        { return s.discount }
func (s *Schedule) StartTime() time.Time      { return s.startTime }
func (s *Schedule) EndTime() time.Time        { return s.endTime }
func (s *Schedule) Status() Status            { return s.status }
func (s *Schedule) OriginalPriceCents() int64 { return s.originalPriceCents }
func (s *Schedule) CreatedBy() *uuid.UUID     { return s.createdBy }
func (s *Schedule) CreatedAt() time.Time      { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time      { return s.updatedAt }
