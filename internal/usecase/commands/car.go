package commands

import (
	"context"

	"carshare/internal/domain/car"
	"carshare/internal/domain/user"
	reqdto "carshare/internal/handler/dto/request"
	"carshare/internal/infra"
	"carshare/internal/pkg/errs"
	"carshare/internal/pkg/patch"
	"carshare/internal/usecase/queries"
	"carshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCarForbidden  = errs.New("car access forbidden")
	ErrCarValidation = errs.New("car validation error")
	ErrCarInUse      = errs.New("car has bookings")
)

type CarCommands interface {
	Create(ctx context.Context, req reqdto.CreateCarRequest, ownerID uuid.UUID) (*queries.CarView, error)
	Update(ctx context.Context, carID uuid.UUID, req reqdto.UpdateCarRequest, actorID uuid.UUID, actorRole string) (*queries.CarView, error)
	Delete(ctx context.Context, carID, actorID uuid.UUID, actorRole string) error
}

type carCommandsImpl struct {
	uow        shared.UnitOfWork
	carQueries queries.CarQueries
}

func NewCarCommands(uow shared.UnitOfWork, carQueries queries.CarQueries) CarCommands {
	return &carCommandsImpl{
		uow:        uow,
		carQueries: carQueries,
	}
}

func (c *carCommandsImpl) Create(ctx context.Context, req reqdto.CreateCarRequest, ownerID uuid.UUID) (*queries.CarView, error) {
	carEntity, err := car.NewCar(ownerID, req.Make, req.Model, req.Year, req.DailyRateCents, req.Location, req.Description)
	if err != nil {
		return nil, errs.Mark(err, ErrCarValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Cars().Create(ctx, tx.DB(), carEntity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.carQueries.GetByID(ctx, carEntity.ID())
}

func (c *carCommandsImpl) Update(ctx context.Context, carID uuid.UUID, req reqdto.UpdateCarRequest, actorID uuid.UUID, actorRole string) (*queries.CarView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		carEntity, err := tx.Cars().FindByIDForUpdate(ctx, tx.DB(), carID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCarNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !carEntity.IsOwnedBy(actorID) && actorRole != user.RoleAdmin.String() {
			return ErrCarForbidden
		}

		err = carEntity.UpdateDetails(
			patch.Coalesce(req.Make, carEntity.Make()),
			patch.Coalesce(req.Model, carEntity.Model()),
			patch.Coalesce(req.Year, carEntity.Year()),
			patch.Coalesce(req.DailyRateCents, carEntity.DailyRateCents()),
			patch.Coalesce(req.Location, carEntity.Location()),
			patch.Coalesce(req.Description, carEntity.Description()),
			patch.Coalesce(req.IsAvailable, carEntity.IsAvailable()),
		)
		if err != nil {
			return errs.Mark(err, ErrCarValidation)
		}

		if err := tx.Cars().Update(ctx, tx.DB(), carEntity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.carQueries.GetByID(ctx, carID)
}

func (c *carCommandsImpl) Delete(ctx context.Context, carID, actorID uuid.UUID, actorRole string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		carEntity, err := tx.Cars().FindByIDForUpdate(ctx, tx.DB(), carID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCarNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !carEntity.IsOwnedBy(actorID) && actorRole != user.RoleAdmin.String() {
			return ErrCarForbidden
		}

		if err := tx.Cars().Delete(ctx, tx.DB(), carID); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrCarInUse
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
