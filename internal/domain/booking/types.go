package booking

// Status values are stored verbatim; renaming one breaks existing rows.
type Status string

const (
	StatusPendingPayment    Status = "pending_payment"
	StatusConfirmed         Status = "confirmed"
	StatusActive            Status = "active"
	StatusCompleted         Status = "completed"
	StatusCancelledByRenter Status = "cancelled_by_renter"
	StatusCancelledByOwner  Status = "cancelled_by_owner"
	StatusPaymentFailed     Status = "payment_failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusActive, StatusCompleted,
		StatusCancelledByRenter, StatusCancelledByOwner, StatusPaymentFailed:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsLocking reports whether a booking in this status blocks the car's
// calendar for its date period.
func (s Status) IsLocking() bool {
	return s == StatusConfirmed || s == StatusActive
}

func (s Status) IsCancellable() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// transitions is the single source of truth for the booking state machine.
// Every status mutation goes through Status.CanTransitionTo; there is no
// other way to move a booking between states.
var transitions = map[Status]map[Status]struct{}{
	StatusPendingPayment: {
		StatusConfirmed:         {},
		StatusPaymentFailed:     {},
		StatusCancelledByRenter: {},
		StatusCancelledByOwner:  {},
	},
	StatusConfirmed: {
		StatusActive:            {},
		StatusCancelledByRenter: {},
		StatusCancelledByOwner:  {},
	},
	StatusActive: {
		StatusCompleted: {},
	},
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

// CancelledBy is the party requesting a cancellation; it selects the
// terminal status the booking lands in.
type CancelledBy string

const (
	CancelledByRenter CancelledBy = "renter"
	CancelledByOwner  CancelledBy = "owner"
)

func (c CancelledBy) TargetStatus() Status {
	if c == CancelledByOwner {
		return StatusCancelledByOwner
	}
	return StatusCancelledByRenter
}
