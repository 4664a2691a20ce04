//go:build unit

package commands_test

import (
	"context"
	"testing"

	"carshare/internal/domain/booking"
	"carshare/internal/infra"
	"carshare/internal/usecase/commands"
	"carshare/internal/usecase/shared"
	"carshare/tests/common/builder"
	commandsmock "carshare/tests/mock/commands"
	sharedmock "carshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUow      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockBookings *sharedmock.MockBookingRepository
	mockReads    *sharedmock.MockCommandReads
	mockGateway  *commandsmock.MockPaymentGateway
	cmds         commands.PaymentCommands
}

func TestPaymentCommandsSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.mockTx = sharedmock.NewMockTx(s.ctrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.ctrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.ctrl)
	s.mockGateway = commandsmock.NewMockPaymentGateway(s.ctrl)

	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
	s.mockUow.EXPECT().CommandReads().Return(s.mockReads).AnyTimes()

	s.cmds = commands.NewPaymentCommands(s.mockUow, s.mockGateway)
}

func (s *PaymentCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PaymentCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
}

func (s *PaymentCommandsTestSuite) TestCreateCheckoutSession() {
	s.Run("success: session stored on the pending booking", func() {
		b := builder.NewBookingBuilder()
		session := &commands.CheckoutSession{SessionID: "cs_123", RedirectURL: "https://pay.example/cs_123"}

		s.mockReads.EXPECT().BookingByID(gomock.Any(), b.ID).Return(b.BuildSnapshot(), nil)
		s.mockGateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params commands.CheckoutParams) (*commands.CheckoutSession, error) {
				s.Equal(b.ID, params.BookingID)
				s.Equal(b.TotalPriceCents, params.AmountCents)
				return session, nil
			})
		s.expectWithin()
		s.mockBookings.EXPECT().AttachCheckoutSession(gomock.Any(), gomock.Any(), b.ID, "cs_123").
			Return(int64(1), nil)

		got, err := s.cmds.CreateCheckoutSession(context.Background(), b.ID, b.RenterID)
		s.NoError(err)
		s.Equal(session, got)
	})

	s.Run("error: only the renter can start checkout", func() {
		b := builder.NewBookingBuilder()

		s.mockReads.EXPECT().BookingByID(gomock.Any(), b.ID).Return(b.BuildSnapshot(), nil)

		_, err := s.cmds.CreateCheckoutSession(context.Background(), b.ID, uuid.New())
		s.ErrorIs(err, commands.ErrCheckoutForbidden)
	})

	s.Run("error: booking already confirmed", func() {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed)

		s.mockReads.EXPECT().BookingByID(gomock.Any(), b.ID).Return(b.BuildSnapshot(), nil)

		_, err := s.cmds.CreateCheckoutSession(context.Background(), b.ID, b.RenterID)
		s.ErrorIs(err, commands.ErrBookingNotPending)
	})

	s.Run("error: unknown booking", func() {
		id := uuid.New()

		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := s.cmds.CreateCheckoutSession(context.Background(), id, uuid.New())
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("error: gateway without credentials", func() {
		b := builder.NewBookingBuilder()

		s.mockReads.EXPECT().BookingByID(gomock.Any(), b.ID).Return(b.BuildSnapshot(), nil)
		s.mockGateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrGatewayUnavailable)

		_, err := s.cmds.CreateCheckoutSession(context.Background(), b.ID, b.RenterID)
		s.ErrorIs(err, commands.ErrGatewayUnavailable)
	})

	s.Run("error: booking left pending_payment while gateway was slow", func() {
		b := builder.NewBookingBuilder()
		session := &commands.CheckoutSession{SessionID: "cs_456", RedirectURL: "https://pay.example/cs_456"}

		s.mockReads.EXPECT().BookingByID(gomock.Any(), b.ID).Return(b.BuildSnapshot(), nil)
		s.mockGateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(session, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().AttachCheckoutSession(gomock.Any(), gomock.Any(), b.ID, "cs_456").
			Return(int64(0), nil)

		_, err := s.cmds.CreateCheckoutSession(context.Background(), b.ID, b.RenterID)
		s.ErrorIs(err, commands.ErrBookingNotPending)
	})
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook() {
	payload := []byte(`{"id":"evt_1"}`)
	signature := "t=1,v1=sig"

	s.Run("success: completed payment confirms the booking", func() {
		b := builder.NewBookingBuilder()
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(&commands.WebhookEvent{
				Kind:       commands.WebhookEventCompleted,
				BookingID:  b.ID,
				PaymentRef: "pi_789",
			}, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().HasLockingOverlap(gomock.Any(), gomock.Any(), b.CarID, gomock.Any(), gomock.Not(gomock.Nil())).
			Return(false, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), b.ID,
			booking.StatusPendingPayment, booking.StatusConfirmed, gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, _, _ booking.Status, paymentRef *string) (int64, error) {
				s.Equal("pi_789", *paymentRef)
				return 1, nil
			})

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("success: payment for dates another booking locked is acked without confirming", func() {
		b := builder.NewBookingBuilder()
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(&commands.WebhookEvent{
				Kind:       commands.WebhookEventCompleted,
				BookingID:  b.ID,
				PaymentRef: "pi_790",
			}, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().HasLockingOverlap(gomock.Any(), gomock.Any(), b.CarID, gomock.Any(), gomock.Not(gomock.Nil())).
			Return(true, nil)

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("success: duplicate delivery is a no-op", func() {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed)
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(&commands.WebhookEvent{
				Kind:       commands.WebhookEventCompleted,
				BookingID:  b.ID,
				PaymentRef: "pi_789",
			}, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("success: failed payment marks the booking payment_failed", func() {
		b := builder.NewBookingBuilder()
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(&commands.WebhookEvent{
				Kind:      commands.WebhookEventPaymentFailed,
				BookingID: b.ID,
			}, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), b.ID,
			booking.StatusPendingPayment, booking.StatusPaymentFailed, gomock.Nil()).
			Return(int64(1), nil)

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("success: event for unknown booking is acked", func() {
		id := uuid.New()

		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(&commands.WebhookEvent{
				Kind:       commands.WebhookEventCompleted,
				BookingID:  id,
				PaymentRef: "pi_791",
			}, nil)
		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("success: event types the system ignores", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, signature).Return(nil, nil)

		s.NoError(s.cmds.HandleWebhook(context.Background(), payload, signature))
	})

	s.Run("error: bad signature", func() {
		s.mockGateway.EXPECT().VerifyEvent(payload, signature).
			Return(nil, commands.ErrWebhookInvalid)

		s.ErrorIs(s.cmds.HandleWebhook(context.Background(), payload, signature), commands.ErrWebhookInvalid)
	})
}
