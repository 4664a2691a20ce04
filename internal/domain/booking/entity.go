package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the aggregate the whole system exists to protect: for any car,
// bookings whose status is locking must never hold overlapping periods.
// Status only moves through transition(), which consults the table in
// types.go.
type Booking struct {
	id                 uuid.UUID
	carID              uuid.UUID
	renterID           uuid.UUID
	ownerID            uuid.UUID
	period             DatePeriod
	status             Status
	price              Money
	paymentRef         *string
	checkoutSessionRef *string
	createdAt          time.Time
	updatedAt          time.Time
}

func ReconstructBooking(
	id, carID, renterID, ownerID uuid.UUID,
	period DatePeriod,
	status Status,
	price Money,
	paymentRef, checkoutSessionRef *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		carID:              carID,
		renterID:           renterID,
		ownerID:            ownerID,
		period:             period,
		status:             status,
		price:              price,
		paymentRef:         paymentRef,
		checkoutSessionRef: checkoutSessionRef,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (b *Booking) transition(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// ConfirmPayment records the gateway's payment reference and moves the
// booking out of pending_payment.
func (b *Booking) ConfirmPayment(paymentRef string) error {
	if err := b.transition(StatusConfirmed); err != nil {
		return err
	}
	b.paymentRef = &paymentRef
	return nil
}

func (b *Booking) FailPayment() error {
	return b.transition(StatusPaymentFailed)
}

func (b *Booking) Cancel(by CancelledBy) error {
	return b.transition(by.TargetStatus())
}

func (b *Booking) AttachCheckoutSession(sessionRef string) error {
	if b.status != StatusPendingPayment {
		return ErrInvalidTransition
	}
	b.checkoutSessionRef = &sessionRef
	return nil
}

func (b *Booking) IsRentedBy(userID uuid.UUID) bool {
	return b.renterID == userID
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.ownerID == userID
}

// CancellerFor maps the requesting user to the cancelling party, or false
// when the user is neither the renter nor the owner.
func (b *Booking) CancellerFor(userID uuid.UUID) (CancelledBy, bool) {
	switch {
	case b.IsRentedBy(userID):
		return CancelledByRenter, true
	case b.IsOwnedBy(userID):
		return CancelledByOwner, true
	default:
		return "", false
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) CarID() uuid.UUID            { return b.carID }
func (b *Booking) RenterID() uuid.UUID         { return b.renterID }
func (b *Booking) OwnerID() uuid.UUID          { return b.ownerID }
func (b *Booking) Period() DatePeriod          { return b.period }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) Price() Money                { return b.price }
func (b *Booking) PaymentRef() *string         { return b.paymentRef }
func (b *Booking) CheckoutSessionRef() *string { return b.checkoutSessionRef }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
