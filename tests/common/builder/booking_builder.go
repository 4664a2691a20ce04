//go:build unit || e2e

package builder

import (
	"time"

	"carshare/internal/domain/booking"
	reqdto "carshare/internal/handler/dto/request"
	"carshare/internal/usecase/queries"
	"carshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	CarID           uuid.UUID
	RenterID        uuid.UUID
	OwnerID         uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	Status          booking.Status
	TotalPriceCents int64
	PaymentRef      *string
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:              uuid.New(),
		CarID:           uuid.New(),
		RenterID:        uuid.New(),
		OwnerID:         uuid.New(),
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 3),
		Status:          booking.StatusPendingPayment,
		TotalPriceCents: 15000,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewDatePeriod(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(b.TotalPriceCents)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return booking.ReconstructBooking(
		b.ID, b.CarID, b.RenterID, b.OwnerID,
		period,
		b.Status,
		price,
		b.PaymentRef, nil,
		now, now,
	), nil
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CarID:     b.CarID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
	}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	now := time.Now()
	return &queries.BookingView{
		ID:              b.ID,
		CarID:           b.CarID,
		CarMake:         "Toyota",
		CarModel:        "Corolla",
		RenterID:        b.RenterID,
		RenterEmail:     "renter@example.com",
		OwnerID:         b.OwnerID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Status:          b.Status.String(),
		TotalPriceCents: b.TotalPriceCents,
		PaymentRef:      b.PaymentRef,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		CarID:     b.CarID,
		RenterID:  b.RenterID,
		OwnerID:   b.OwnerID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status.String(),
		Price:     b.TotalPriceCents,
	}
}

func (b *BookingBuilder) WithCar(carID uuid.UUID) *BookingBuilder {
	b.CarID = carID
	return b
}

func (b *BookingBuilder) WithRenter(renterID uuid.UUID) *BookingBuilder {
	b.RenterID = renterID
	return b
}

func (b *BookingBuilder) WithOwner(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}
