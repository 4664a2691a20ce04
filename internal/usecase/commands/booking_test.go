//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"carshare/internal/domain/booking"
	"carshare/internal/infra"
	"carshare/internal/pkg/clock"
	"carshare/internal/usecase/commands"
	"carshare/internal/usecase/queries"
	"carshare/internal/usecase/shared"
	"carshare/tests/common/builder"
	queriesmock "carshare/tests/mock/queries"
	sharedmock "carshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUow      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockCars     *sharedmock.MockCarRepository
	mockBookings *sharedmock.MockBookingRepository
	mockQueries  *queriesmock.MockBookingQueries
	clock        *clock.MockClock
	cmds         commands.BookingCommands
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.mockTx = sharedmock.NewMockTx(s.ctrl)
	s.mockCars = sharedmock.NewMockCarRepository(s.ctrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.ctrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.ctrl)

	s.clock = clock.NewMockClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	factory := booking.NewFactory(s.clock, booking.NewDailyRateCalculator())

	s.mockTx.EXPECT().Cars().Return(s.mockCars).AnyTimes()
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()

	s.cmds = commands.NewBookingCommands(s.mockUow, factory, s.mockQueries)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// routes Within callbacks to the mock transaction
func (s *BookingCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
}

func (s *BookingCommandsTestSuite) TestCreate() {
	renterID := uuid.New()

	s.Run("success: partial final day is charged as a full day", func() {
		carBuilder := builder.NewCarBuilder().WithDailyRate(5000)
		carEntity := carBuilder.BuildDomain()

		// two full days plus six hours prices as three days
		req := builder.NewBookingBuilder().
			WithCar(carBuilder.ID).
			WithPeriod(
				time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC),
				time.Date(2026, 1, 14, 18, 0, 0, 0, time.UTC),
			).
			BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), carBuilder.ID).
			Return(carEntity, nil)
		s.mockBookings.EXPECT().HasLockingOverlap(gomock.Any(), gomock.Any(), carBuilder.ID, gomock.Any(), gomock.Nil()).
			Return(false, nil)

		var createdID uuid.UUID
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, b *booking.Booking) (uuid.UUID, error) {
				s.Equal(booking.StatusPendingPayment, b.Status())
				s.Equal(renterID, b.RenterID())
				s.Equal(carEntity.OwnerID(), b.OwnerID())
				s.Equal(int64(15000), b.Price().Cents())
				createdID = b.ID()
				return b.ID(), nil
			})

		view := builder.NewBookingBuilder().BuildReadModel()
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
				s.Equal(createdID, id)
				return view, nil
			})

		got, err := s.cmds.Create(context.Background(), req, renterID)
		s.NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: unknown car", func() {
		req := builder.NewBookingBuilder().BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), req.CarID).
			Return(nil, infra.WrapRepoErr("car not found", nil, infra.KindNotFound))

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrCarNotFound)
	})

	s.Run("error: car not accepting bookings", func() {
		carBuilder := builder.NewCarBuilder().AsUnavailable()
		req := builder.NewBookingBuilder().WithCar(carBuilder.ID).BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), carBuilder.ID).
			Return(carBuilder.BuildDomain(), nil)

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrCarUnavailable)
	})

	s.Run("error: start date before now", func() {
		carBuilder := builder.NewCarBuilder()
		req := builder.NewBookingBuilder().
			WithCar(carBuilder.ID).
			WithPeriod(
				time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC),
				time.Date(2026, 1, 11, 10, 0, 0, 0, time.UTC),
			).
			BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), carBuilder.ID).
			Return(carBuilder.BuildDomain(), nil)

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrInvalidDateRange)
	})

	s.Run("error: end date not after start date", func() {
		start := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
		req := builder.NewBookingBuilder().WithPeriod(start, start).BuildDTO()

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrInvalidDateRange)
	})

	s.Run("error: overlapping locking booking", func() {
		carBuilder := builder.NewCarBuilder()
		req := builder.NewBookingBuilder().WithCar(carBuilder.ID).BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), carBuilder.ID).
			Return(carBuilder.BuildDomain(), nil)
		s.mockBookings.EXPECT().HasLockingOverlap(gomock.Any(), gomock.Any(), carBuilder.ID, gomock.Any(), gomock.Nil()).
			Return(true, nil)

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrBookingConflict)
	})

	s.Run("error: exclusion constraint trips on insert", func() {
		carBuilder := builder.NewCarBuilder()
		req := builder.NewBookingBuilder().WithCar(carBuilder.ID).BuildDTO()

		s.expectWithin()
		s.mockCars.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), carBuilder.ID).
			Return(carBuilder.BuildDomain(), nil)
		s.mockBookings.EXPECT().HasLockingOverlap(gomock.Any(), gomock.Any(), carBuilder.ID, gomock.Any(), gomock.Nil()).
			Return(false, nil)
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("overlapping booking", nil, infra.KindConflict))

		_, err := s.cmds.Create(context.Background(), req, renterID)
		s.ErrorIs(err, commands.ErrBookingConflict)
	})
}

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("success: renter cancels a pending booking", func() {
		requesterID := uuid.New()
		b := builder.NewBookingBuilder().WithRenter(requesterID)
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), b.ID,
			booking.StatusPendingPayment, booking.StatusCancelledByRenter, gomock.Nil()).
			Return(int64(1), nil)

		s.NoError(s.cmds.Cancel(context.Background(), b.ID, requesterID))
	})

	s.Run("success: owner cancels a confirmed booking", func() {
		requesterID := uuid.New()
		b := builder.NewBookingBuilder().WithOwner(requesterID).WithStatus(booking.StatusConfirmed)
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), b.ID,
			booking.StatusConfirmed, booking.StatusCancelledByOwner, gomock.Nil()).
			Return(int64(1), nil)

		s.NoError(s.cmds.Cancel(context.Background(), b.ID, requesterID))
	})

	s.Run("error: requester is neither renter nor owner", func() {
		b := builder.NewBookingBuilder()
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)

		s.ErrorIs(s.cmds.Cancel(context.Background(), b.ID, uuid.New()), commands.ErrCancelForbidden)
	})

	s.Run("error: completed booking cannot be cancelled", func() {
		requesterID := uuid.New()
		b := builder.NewBookingBuilder().WithRenter(requesterID).WithStatus(booking.StatusCompleted)
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)

		s.ErrorIs(s.cmds.Cancel(context.Background(), b.ID, requesterID), commands.ErrInvalidTransition)
	})

	s.Run("error: concurrent writer already changed the status", func() {
		requesterID := uuid.New()
		b := builder.NewBookingBuilder().WithRenter(requesterID)
		entity, err := b.BuildDomain()
		s.Require().NoError(err)

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), b.ID).
			Return(entity, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), b.ID,
			booking.StatusPendingPayment, booking.StatusCancelledByRenter, gomock.Nil()).
			Return(int64(0), nil)

		s.ErrorIs(s.cmds.Cancel(context.Background(), b.ID, requesterID), commands.ErrInvalidTransition)
	})

	s.Run("error: unknown booking", func() {
		id := uuid.New()

		s.expectWithin()
		s.mockBookings.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		s.ErrorIs(s.cmds.Cancel(context.Background(), id, uuid.New()), commands.ErrBookingNotFound)
	})
}
