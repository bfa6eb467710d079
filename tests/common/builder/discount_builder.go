//go:build unit || e2e

package builder

import (
	"time"

	"storefront/internal/domain/discount"
	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleBuilder struct {
	ProductID          uuid.UUID
	ProductName        string
	Kind               discount.Kind
	Value              float64
	StartTime          time.Time
	EndTime            time.Time
	Status             discount.Status
	OriginalPriceCents int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewScheduleBuilder() *ScheduleBuilder {
	now := time.Now()
	return &ScheduleBuilder{
		ProductID:          uuid.New(),
		ProductName:        "Mechanical Keyboard",
		Kind:               discount.KindPercentage,
		Value:              25,
		StartTime:          now.Add(time.Hour),
		EndTime:            now.Add(25 * time.Hour),
		Status:             discount.StatusPending,
		OriginalPriceCents: 9900,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (b *ScheduleBuilder) With(mutate func(*ScheduleBuilder)) *ScheduleBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ScheduleBuilder) BuildCreateRequestDTO() reqdto.CreateScheduleRequest {
	return reqdto.CreateScheduleRequest{
		ProductID: b.ProductID,
		Kind:      b.Kind.String(),
		Value:     b.Value,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *ScheduleBuilder) BuildViewQuery() *queries.ScheduleView {
	return &queries.ScheduleView{
		ID:                 uuid.New(),
		ProductID:          b.ProductID,
		ProductName:        b.ProductName,
		Kind:               b.Kind.String(),
		Value:              b.Value,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status.String(),
		OriginalPriceCents: b.OriginalPriceCents,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (b *ScheduleBuilder) BuildSnapshot() *shared.ScheduleSnapshot {
	return &shared.ScheduleSnapshot{
		ID:                 uuid.New(),
		ProductID:          b.ProductID,
		Kind:               b.Kind,
		Value:              b.Value,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		OriginalPriceCents: b.OriginalPriceCents,
	}
}
