//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"carshare/internal/domain/user"
	"carshare/internal/handler/api"
	resdto "carshare/internal/handler/dto/response"
	"carshare/internal/usecase/commands"
	"carshare/tests/common/httptest"
	commandsmock "carshare/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
	actorID      uuid.UUID
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)
	s.actorID = uuid.New()

	authed := func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleMember)
	}

	s.router.POST("/bookings/:id/checkout-session", authed, s.handler.CreateCheckoutSession)
	s.router.POST("/webhooks/stripe", s.handler.StripeWebhook)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PaymentHandlerTestSuite) TestCreateCheckoutSession() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/checkout-session"

	s.Run("success: returns the session redirect", func() {
		session := &commands.CheckoutSession{SessionID: "cs_123", RedirectURL: "https://checkout.stripe.com/c/pay/cs_123"}

		s.mockCommands.EXPECT().CreateCheckoutSession(gomock.Any(), bookingID, s.actorID).
			Return(session, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var response resdto.CheckoutSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cs_123", response.SessionID)
		s.Equal(session.RedirectURL, response.RedirectURL)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "requester is not the renter",
				commandsError:  commands.ErrCheckoutForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Only the renter",
			},
			{
				name:           "booking already paid",
				commandsError:  commands.ErrBookingNotPending,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not awaiting payment",
			},
			{
				name:           "gateway not configured",
				commandsError:  commands.ErrGatewayUnavailable,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Payments are not available",
			},
			{
				name:           "provider outage",
				commandsError:  commands.ErrGatewayFailure,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateCheckoutSession(gomock.Any(), bookingID, s.actorID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/checkout-session", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *PaymentHandlerTestSuite) TestStripeWebhook() {
	url := "/webhooks/stripe"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	headers := map[string]string{"Stripe-Signature": "t=1,v1=abc"}

	s.Run("success: acknowledges a verified event", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").
			Return(nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on a bad signature", func() {
		s.mockCommands.EXPECT().HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").
			Return(commands.ErrWebhookInvalid).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid webhook signature")
	})
}
