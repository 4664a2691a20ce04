//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"carshare/internal/domain/user"
	"carshare/internal/handler/api"
	resdto "carshare/internal/handler/dto/response"
	"carshare/internal/usecase/commands"
	"carshare/internal/usecase/queries"
	"carshare/tests/common/builder"
	"carshare/tests/common/httptest"
	commandsmock "carshare/tests/mock/commands"
	queriesmock "carshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CarHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCarCommands
	mockQueries  *queriesmock.MockCarQueries
	handler      *api.CarHandler
	actorID      uuid.UUID
}

func TestCarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CarHandlerTestSuite))
}

func (s *CarHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCarCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCarQueries(s.mockCtrl)
	s.handler = api.NewCarHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	authed := func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleMember)
	}

	s.router.GET("/cars", s.handler.List)
	s.router.GET("/cars/:id", s.handler.Get)
	s.router.POST("/cars", authed, s.handler.Create)
	s.router.GET("/cars/mine", authed, s.handler.ListMine)
	s.router.PATCH("/cars/:id", authed, s.handler.Update)
	s.router.DELETE("/cars/:id", authed, s.handler.Delete)
}

func (s *CarHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CarHandlerTestSuite) TestCreate() {
	url := "/cars"
	carBuilder := builder.NewCarBuilder().WithOwner(s.actorID)
	reqBody := carBuilder.BuildDTO()

	s.Run("success: returns 201 with the listing", func() {
		view := carBuilder.BuildReadModel()

		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actorID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.Make, response.Make)
		s.Equal(view.DailyRateCents, response.DailyRateCents)
	})

	s.Run("error: 400 for invalid car data", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actorID).
			Return(nil, commands.ErrCarValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid car data")
	})
}

func (s *CarHandlerTestSuite) TestGet() {
	carBuilder := builder.NewCarBuilder()
	url := "/cars/" + carBuilder.ID.String()

	s.Run("success: public lookup needs no auth", func() {
		view := carBuilder.BuildReadModel()

		s.mockQueries.EXPECT().GetByID(gomock.Any(), carBuilder.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 404 for unknown car", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), carBuilder.ID).
			Return(nil, queries.ErrCarNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Car not found")
	})
}

func (s *CarHandlerTestSuite) TestList() {
	s.Run("success: location and availability filters pass through", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), 0, 0).
			DoAndReturn(func(_ any, filters queries.CarFilters, _, _ int) ([]*queries.CarView, error) {
				s.Require().NotNil(filters.Location)
				s.Equal("Berlin", *filters.Location)
				s.True(filters.AvailableOnly)
				return []*queries.CarView{builder.NewCarBuilder().BuildReadModel()}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars?location=Berlin&available=true", nil, "")

		var response []*resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: own listings", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.actorID, 0, 0).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cars/mine", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *CarHandlerTestSuite) TestUpdate() {
	carBuilder := builder.NewCarBuilder().WithOwner(s.actorID)
	url := "/cars/" + carBuilder.ID.String()
	newRate := int64(7500)

	s.Run("success: returns the updated listing", func() {
		view := carBuilder.BuildReadModel()
		view.DailyRateCents = newRate

		s.mockCommands.EXPECT().Update(gomock.Any(), carBuilder.ID, gomock.Any(), s.actorID, user.RoleMember.String()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"daily_rate_cents": newRate}, "")

		var response resdto.CarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(newRate, response.DailyRateCents)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not found", commandsError: commands.ErrCarNotFound, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: commands.ErrCarForbidden, expectedStatus: http.StatusForbidden},
			{name: "bad data", commandsError: commands.ErrCarValidation, expectedStatus: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), carBuilder.ID, gomock.Any(), s.actorID, user.RoleMember.String()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *CarHandlerTestSuite) TestDelete() {
	carBuilder := builder.NewCarBuilder().WithOwner(s.actorID)
	url := "/cars/" + carBuilder.ID.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), carBuilder.ID, s.actorID, user.RoleMember.String()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the car has bookings", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), carBuilder.ID, s.actorID, user.RoleMember.String()).
			Return(commands.ErrCarInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cannot be deleted")
	})
}
