package repository

import (
	"context"
	"time"

	"carshare/internal/domain/booking"
	"carshare/internal/infra"
	"carshare/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, car_id, renter_id, owner_id, start_date, end_date, status, total_price_cents, payment_ref, checkout_session_ref)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.CarID(), b.RenterID(), b.OwnerID(),
		b.Period().Start(), b.Period().End(),
		b.Status().String(), b.Price().Cents(),
		b.PaymentRef(), b.CheckoutSessionRef(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const findBookingForUpdateSQL = `
SELECT id, car_id, renter_id, owner_id, start_date, end_date, status, total_price_cents, payment_ref, checkout_session_ref, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID, carID, renterID, ownerID uuid.UUID
		startDate, endDate                  time.Time
		status                              string
		priceCents                          int64
		paymentRef, checkoutSessionRef      *string
		createdAt, updatedAt                time.Time
	)

	err := dbtx.QueryRow(ctx, findBookingForUpdateSQL, id).Scan(
		&bookingID, &carID, &renterID, &ownerID,
		&startDate, &endDate, &status, &priceCents,
		&paymentRef, &checkoutSessionRef, &createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	return reconstructBooking(bookingID, carID, renterID, ownerID, startDate, endDate, status, priceCents, paymentRef, checkoutSessionRef, createdAt, updatedAt)
}

// The three overlap shapes (starts inside, ends inside, fully contains) all
// reduce to the single half-open test below: existing.start < new.end AND
// existing.end > new.start.
const hasLockingOverlapSQL = `
SELECT EXISTS (
	SELECT 1
	FROM bookings
	WHERE car_id = $1
	  AND status IN ('confirmed', 'active')
	  AND start_date < $3
	  AND end_date > $2
	  AND ($4::uuid IS NULL OR id <> $4)
)`

func (r *BookingRepository) HasLockingOverlap(ctx context.Context, dbtx db.DBTX, carID uuid.UUID, period booking.DatePeriod, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, hasLockingOverlapSQL, carID, period.Start(), period.End(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $3,
    payment_ref = COALESCE($4, payment_ref),
    updated_at = now()
WHERE id = $1 AND status = $2`

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to booking.Status, paymentRef *string) (int64, error) {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL, id, from.String(), to.String(), paymentRef)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected(), nil
}

const attachCheckoutSessionSQL = `
UPDATE bookings
SET checkout_session_ref = $2,
    updated_at = now()
WHERE id = $1 AND status = 'pending_payment'`

func (r *BookingRepository) AttachCheckoutSession(ctx context.Context, dbtx db.DBTX, id uuid.UUID, sessionRef string) (int64, error) {
	tag, err := dbtx.Exec(ctx, attachCheckoutSessionSQL, id, sessionRef)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to attach checkout session", err)
	}
	return tag.RowsAffected(), nil
}

func reconstructBooking(
	id, carID, renterID, ownerID uuid.UUID,
	startDate, endDate time.Time,
	status string,
	priceCents int64,
	paymentRef, checkoutSessionRef *string,
	createdAt, updatedAt time.Time,
) (*booking.Booking, error) {
	period, err := booking.NewDatePeriod(startDate, endDate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid period", err)
	}
	statusValue, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid status", err)
	}
	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid price", err)
	}

	return booking.ReconstructBooking(
		id, carID, renterID, ownerID,
		period, statusValue, price,
		paymentRef, checkoutSessionRef,
		createdAt, updatedAt,
	), nil
}
