package booking

import (
	"carshare/internal/domain/car"
	"carshare/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking prices the period against the car's daily rate and returns
// a pending_payment booking with the owner denormalized from the car.
// Availability and overlap checks happen in the usecase layer, inside the
// same transaction that inserts the row.
func (f *Factory) CreateBooking(carEntity *car.Car, renterID uuid.UUID, period DatePeriod) (*Booking, error) {
	if err := period.ValidateNotPastAt(f.Clock.Now()); err != nil {
		return nil, err
	}

	days := period.Days()
	if days <= 0 {
		return nil, ErrInvalidDuration
	}

	priceCents := f.PriceCalculator.CalculatePriceCents(carEntity, period)
	price, err := NewMoney(priceCents)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:       uuid.New(),
		carID:    carEntity.ID(),
		renterID: renterID,
		ownerID:  carEntity.OwnerID(),
		period:   period,
		status:   StatusPendingPayment,
		price:    price,
	}, nil
}
