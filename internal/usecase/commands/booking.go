package commands

import (
	"context"
	"errors"

	"carshare/internal/domain/booking"
	reqdto "carshare/internal/handler/dto/request"
	"carshare/internal/infra"
	"carshare/internal/pkg/errs"
	"carshare/internal/usecase/queries"
	"carshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCarNotFound             = errs.New("car not found")
	ErrCarUnavailable          = errs.New("car unavailable")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrInvalidDateRange        = errs.New("invalid date range")
	ErrInvalidDuration         = errs.New("invalid booking duration")
	ErrCancelForbidden         = errs.New("cancel forbidden")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, renterID uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID, requesterID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		bookingQueries: bookingQueries,
	}
}

// Create runs the whole check-then-insert sequence inside one transaction.
// The car row is locked first, so two concurrent creates on the same car
// serialize and the second one sees whatever the first inserted. A partial
// exclusion constraint on locking bookings backstops the overlap check at
// the schema level.
func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, renterID uuid.UUID) (*queries.BookingView, error) {
	period, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		carEntity, err := tx.Cars().FindByIDForUpdate(ctx, tx.DB(), req.CarID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCarNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !carEntity.IsAvailable() {
			return ErrCarUnavailable
		}

		bookingEntity, err := c.factory.CreateBooking(carEntity, renterID, period)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrStartDateInPast), errors.Is(err, booking.ErrInvalidDateRange):
				return errs.Mark(err, ErrInvalidDateRange)
			case errors.Is(err, booking.ErrInvalidDuration):
				return errs.Mark(err, ErrInvalidDuration)
			default:
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		overlap, err := tx.Bookings().HasLockingOverlap(ctx, tx.DB(), carEntity.ID(), period, nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overlap {
			return ErrBookingConflict
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), bookingEntity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// Cancel allows the renter or the owner to cancel a pending or confirmed
// booking; the terminal status records which side cancelled.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, requesterID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingEntity, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		by, ok := bookingEntity.CancellerFor(requesterID)
		if !ok {
			return ErrCancelForbidden
		}

		previous := bookingEntity.Status()
		if err := bookingEntity.Cancel(by); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		affected, err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingEntity.ID(), previous, bookingEntity.Status(), nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}
