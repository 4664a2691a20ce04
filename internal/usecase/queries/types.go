package queries

import (
	"time"

	"carshare/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrQueryFailed marks read-store failures that are not a missing row, so
// handlers surface them as server errors rather than not-found.
var ErrQueryFailed = errs.New("query failed")

// Read models (DTO for read side)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	CarID              uuid.UUID  `json:"car_id"`
	CarMake            string     `json:"car_make"`
	CarModel           string     `json:"car_model"`
	RenterID           uuid.UUID  `json:"renter_id"`
	RenterEmail        string     `json:"renter_email"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	Status             string     `json:"status"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	PaymentRef         *string    `json:"payment_ref,omitempty"`
	CheckoutSessionRef *string    `json:"checkout_session_ref,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	CarID           uuid.UUID `json:"car_id"`
	CarMake         string    `json:"car_make"`
	CarModel        string    `json:"car_model"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type CarView struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
