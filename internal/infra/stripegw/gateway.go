package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"carshare/internal/pkg/config"
	"carshare/internal/pkg/errs"
	"carshare/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Gateway adapts Stripe Checkout to the payment port. Bookings travel as
// the session's client_reference_id; the webhook carries it back.
type Gateway struct {
	api           *client.API
	currency      string
	frontendURL   string
	webhookSecret string
}

// NewGateway returns a disabled gateway when no secret key is configured,
// so checkout endpoints degrade to a clean unavailable error instead of a
// nil dereference.
func NewGateway(cfg config.StripeConfig) commands.PaymentGateway {
	if cfg.SecretKey == "" {
		return &disabledGateway{}
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
	})

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Gateway{
		api:           api,
		currency:      cfg.Currency,
		frontendURL:   cfg.FrontendURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, params commands.CheckoutParams) (*commands.CheckoutSession, error) {
	bookingRef := params.BookingID.String()

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(bookingRef),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/bookings/%s?checkout=success", g.frontendURL, bookingRef)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/bookings/%s?checkout=cancelled", g.frontendURL, bookingRef)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(params.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.Description),
					},
				},
			},
		},
	}
	sessionParams.Context = ctx

	session, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, errs.Mark(err, commands.ErrGatewayFailure)
	}

	return &commands.CheckoutSession{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (g *Gateway) VerifyEvent(payload []byte, signature string) (*commands.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, errs.Wrap(err, "webhook signature verification failed")
	}

	switch string(event.Type) {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		return g.sessionEvent(event, commands.WebhookEventCompleted)
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		return g.sessionEvent(event, commands.WebhookEventPaymentFailed)
	default:
		return nil, nil
	}
}

func (g *Gateway) sessionEvent(event stripe.Event, kind commands.WebhookEventKind) (*commands.WebhookEvent, error) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, errs.Wrap(err, "failed to decode checkout session event")
	}

	bookingID, err := uuid.Parse(session.ClientReferenceID)
	if err != nil {
		return nil, errs.Wrap(err, "event carries no valid booking reference")
	}

	paymentRef := session.ID
	if session.PaymentIntent != nil {
		paymentRef = session.PaymentIntent.ID
	}

	return &commands.WebhookEvent{
		Kind:       kind,
		BookingID:  bookingID,
		PaymentRef: paymentRef,
	}, nil
}

type disabledGateway struct{}

func (d *disabledGateway) CreateCheckoutSession(_ context.Context, _ commands.CheckoutParams) (*commands.CheckoutSession, error) {
	return nil, commands.ErrGatewayUnavailable
}

func (d *disabledGateway) VerifyEvent(_ []byte, _ string) (*commands.WebhookEvent, error) {
	return nil, commands.ErrGatewayUnavailable
}
