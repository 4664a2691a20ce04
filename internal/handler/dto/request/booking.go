package request

import (
	"time"

	"carshare/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CarID     uuid.UUID `json:"car_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

func (r CreateBookingRequest) ToDomain() (booking.DatePeriod, error) {
	return booking.NewDatePeriod(r.StartDate, r.EndDate)
}
