package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads.

type BookingSnapshot struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	RenterID  uuid.UUID
	OwnerID   uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Status    string
	Price     int64
}

type CarSnapshot struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Make           string
	Model          string
	Year           int
	DailyRateCents int64
	Location       string
	Description    string
	IsAvailable    bool
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}
