package shared

import (
	"context"

	"carshare/internal/domain/booking"
	"carshare/internal/domain/car"
	"carshare/internal/domain/user"
	"carshare/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Cars() CarRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	CarByID(ctx context.Context, id uuid.UUID) (*CarSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// FindByIDForUpdate reconstructs the aggregate under a row lock.
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	// HasLockingOverlap reports whether any confirmed or active booking on the
	// car overlaps the half-open period. excludeID skips the booking being
	// transitioned so it never conflicts with itself.
	HasLockingOverlap(ctx context.Context, dbtx db.DBTX, carID uuid.UUID, period booking.DatePeriod, excludeID *uuid.UUID) (bool, error)
	// UpdateStatus applies a transition guarded on the status the caller
	// observed; returns the number of rows changed (0 means a concurrent
	// writer got there first).
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to booking.Status, paymentRef *string) (int64, error)
	// AttachCheckoutSession stores the session ref while the booking is still
	// pending_payment, same guarded-update contract as UpdateStatus.
	AttachCheckoutSession(ctx context.Context, dbtx db.DBTX, id uuid.UUID, sessionRef string) (int64, error)
}

type CarRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, c *car.Car) (uuid.UUID, error)
	// FindByIDForUpdate locks the car row, serializing concurrent booking
	// creation on the same car.
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*car.Car, error)
	Update(ctx context.Context, dbtx db.DBTX, c *car.Car) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
