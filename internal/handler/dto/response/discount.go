package response

import (
	"time"

	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ScheduleResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"productId"`
	ProductName        string    `json:"productName"`
	Kind               string    `json:"kind"`
	Value              float64   `json:"value"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	OriginalPriceCents int64     `json:"originalPriceCents"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type CreateScheduleResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromScheduleView(v *queries.ScheduleView) (*ScheduleResponse, error) {
	var resp ScheduleResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}
