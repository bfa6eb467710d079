package shared

import (
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/domain/order"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type ProductSnapshot struct {
	ID               uuid.UUID
	Name             string
	PriceCents       int64
	Stock            int32
	SalePriceCents   int64
	IsDiscountActive bool
}

type ScheduleSnapshot struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	Kind               discount.Kind
	Value              float64
	StartTime          time.Time
	EndTime            time.Time
	Status             discount.Status
	OriginalPriceCents int64
}

type OrderSnapshot struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      order.Status
	IsPaid      bool
	IsDelivered bool
}

type JobStatus string

const (
	JobPending   JobStatus = "Pending"
	JobActive    JobStatus = "Active"
	JobCompleted JobStatus = "Completed"
	JobFailed    JobStatus = "Failed"
)

const JobTypeNotification = "notification"

type JobSnapshot struct {
	ID          uuid.UUID
	Name        string
	Type        string
	ScheduledAt time.Time
	Status      JobStatus
	Data        []byte
}
