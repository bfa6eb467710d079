package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Kind      string    `json:"kind" binding:"required,oneof=percentage fixed"`
	Value     float64   `json:"value" binding:"required,gt=0"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
