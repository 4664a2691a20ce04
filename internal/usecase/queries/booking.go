package queries

import (
	"context"

	"carshare/internal/infra"
	"carshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
)

type BookingQueries interface {
	// GetByID is restricted to the booking's renter and its owner.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the actor check; for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRenterPaginated(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	if view.RenterID != actorID && view.OwnerID != actorID {
		return nil, ErrBookingAccess
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*BookingListItem, error) {
	limit = ValidateLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return q.readStore.FindByRenterPaginated(ctx, renterID, int32(limit), int32(offset))
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*BookingListItem, error) {
	limit = ValidateLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return q.readStore.FindByOwnerPaginated(ctx, ownerID, int32(limit), int32(offset))
}
