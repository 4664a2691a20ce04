package commands

import (
	"context"
	"log/slog"

	"carshare/internal/domain/booking"
	"carshare/internal/infra"
	"carshare/internal/pkg/errs"
	"carshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotPending  = errs.New("booking is not pending payment")
	ErrCheckoutForbidden  = errs.New("checkout forbidden")
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrGatewayFailure     = errs.New("payment gateway failure")
	ErrWebhookInvalid     = errs.New("webhook verification failed")
)

type WebhookEventKind string

const (
	WebhookEventCompleted     WebhookEventKind = "completed"
	WebhookEventPaymentFailed WebhookEventKind = "payment_failed"
)

type CheckoutParams struct {
	BookingID   uuid.UUID
	AmountCents int64
	Description string
}

type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// WebhookEvent is a payment outcome already authenticated by the gateway
// adapter. PaymentRef is empty for failure events.
type WebhookEvent struct {
	Kind       WebhookEventKind
	BookingID  uuid.UUID
	PaymentRef string
}

// PaymentGateway is the capability object for the checkout provider. A
// deployment without provider credentials gets an implementation whose
// methods fail with ErrGatewayUnavailable instead of a nil gateway.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// VerifyEvent authenticates a raw webhook delivery and maps it to a
	// WebhookEvent. Event types the system does not care about return
	// (nil, nil).
	VerifyEvent(payload []byte, signature string) (*WebhookEvent, error)
}

type PaymentCommands interface {
	CreateCheckoutSession(ctx context.Context, bookingID, requesterID uuid.UUID) (*CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gateway,
	}
}

// CreateCheckoutSession calls the provider outside any transaction so a slow
// gateway never holds a database connection. A gateway failure leaves the
// booking untouched in pending_payment.
func (p *paymentCommandsImpl) CreateCheckoutSession(ctx context.Context, bookingID, requesterID uuid.UUID) (*CheckoutSession, error) {
	snapshot, err := p.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if snapshot.RenterID != requesterID {
		return nil, ErrCheckoutForbidden
	}
	if snapshot.Status != booking.StatusPendingPayment.String() {
		return nil, ErrBookingNotPending
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		BookingID:   snapshot.ID,
		AmountCents: snapshot.Price,
		Description: "Car rental booking",
	})
	if err != nil {
		return nil, err
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		affected, err := tx.Bookings().AttachCheckoutSession(ctx, tx.DB(), bookingID, session.SessionID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrBookingNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// HandleWebhook processes at-least-once deliveries: unknown bookings and
// bookings no longer in pending_payment are logged and acknowledged so the
// provider stops retrying.
func (p *paymentCommandsImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := p.gateway.VerifyEvent(payload, signature)
	if err != nil {
		return errs.Mark(err, ErrWebhookInvalid)
	}
	if event == nil {
		return nil
	}

	switch event.Kind {
	case WebhookEventCompleted:
		return p.confirmBooking(ctx, event)
	case WebhookEventPaymentFailed:
		return p.failBooking(ctx, event)
	default:
		slog.Info("ignoring webhook event", "kind", string(event.Kind))
		return nil
	}
}

// confirmBooking re-runs the overlap check at confirmation time: of several
// pending bookings on the same dates, only the first paid one wins. A loser
// is left pending and the event acknowledged; settlement of the charge is a
// support flow, not this code path.
func (p *paymentCommandsImpl) confirmBooking(ctx context.Context, event *WebhookEvent) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingEntity, ok, err := p.loadPending(ctx, tx, event.BookingID)
		if err != nil || !ok {
			return err
		}

		excludeID := bookingEntity.ID()
		overlap, err := tx.Bookings().HasLockingOverlap(ctx, tx.DB(), bookingEntity.CarID(), bookingEntity.Period(), &excludeID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overlap {
			slog.Warn("payment received for dates already confirmed on another booking",
				"booking_id", event.BookingID,
				"car_id", bookingEntity.CarID())
			return nil
		}

		if err := bookingEntity.ConfirmPayment(event.PaymentRef); err != nil {
			return nil
		}

		affected, err := tx.Bookings().UpdateStatus(ctx, tx.DB(),
			bookingEntity.ID(), booking.StatusPendingPayment, booking.StatusConfirmed, bookingEntity.PaymentRef())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			slog.Info("booking already transitioned by a concurrent webhook", "booking_id", event.BookingID)
		}
		return nil
	})
}

func (p *paymentCommandsImpl) failBooking(ctx context.Context, event *WebhookEvent) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingEntity, ok, err := p.loadPending(ctx, tx, event.BookingID)
		if err != nil || !ok {
			return err
		}

		if err := bookingEntity.FailPayment(); err != nil {
			return nil
		}

		affected, err := tx.Bookings().UpdateStatus(ctx, tx.DB(),
			bookingEntity.ID(), booking.StatusPendingPayment, booking.StatusPaymentFailed, nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			slog.Info("booking already transitioned by a concurrent webhook", "booking_id", event.BookingID)
		}
		return nil
	})
}

func (p *paymentCommandsImpl) loadPending(ctx context.Context, tx shared.Tx, bookingID uuid.UUID) (*booking.Booking, bool, error) {
	bookingEntity, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("webhook references unknown booking", "booking_id", bookingID)
			return nil, false, nil
		}
		return nil, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if bookingEntity.Status() != booking.StatusPendingPayment {
		slog.Info("webhook already processed",
			"booking_id", bookingID,
			"status", bookingEntity.Status().String())
		return nil, false, nil
	}

	return bookingEntity, true, nil
}
