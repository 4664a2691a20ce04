package repository

import (
	"context"
	"time"

	"carshare/internal/domain/car"
	"carshare/internal/infra"
	"carshare/internal/infra/db"

	"github.com/google/uuid"
)

type CarRepository struct{}

func NewCarRepository() *CarRepository {
	return &CarRepository{}
}

const createCarSQL = `
INSERT INTO cars (id, owner_id, make, model, year, daily_rate_cents, location, description, is_available)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *CarRepository) Create(ctx context.Context, dbtx db.DBTX, c *car.Car) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createCarSQL,
		c.ID(), c.OwnerID(), c.Make(), c.Model(), c.Year(),
		c.DailyRateCents(), c.Location(), c.Description(), c.IsAvailable(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create car", err)
	}
	return id, nil
}

// FindByIDForUpdate locks the car row; concurrent booking creation on the
// same car serializes behind this lock.
const findCarForUpdateSQL = `
SELECT id, owner_id, make, model, year, daily_rate_cents, location, description, is_available, created_at, updated_at
FROM cars
WHERE id = $1
FOR UPDATE`

func (r *CarRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*car.Car, error) {
	var (
		carID, ownerID       uuid.UUID
		make, model          string
		year                 int
		dailyRateCents       int64
		location, desc      string
		isAvailable          bool
		createdAt, updatedAt time.Time
	)

	err := dbtx.QueryRow(ctx, findCarForUpdateSQL, id).Scan(
		&carID, &ownerID, &make, &model, &year,
		&dailyRateCents, &location, &desc, &isAvailable,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car for update", err)
	}

	return car.ReconstructCar(carID, ownerID, make, model, year, dailyRateCents, location, desc, isAvailable, createdAt, updatedAt), nil
}

const updateCarSQL = `
UPDATE cars
SET make = $2,
    model = $3,
    year = $4,
    daily_rate_cents = $5,
    location = $6,
    description = $7,
    is_available = $8,
    updated_at = now()
WHERE id = $1`

func (r *CarRepository) Update(ctx context.Context, dbtx db.DBTX, c *car.Car) error {
	tag, err := dbtx.Exec(ctx, updateCarSQL,
		c.ID(), c.Make(), c.Model(), c.Year(),
		c.DailyRateCents(), c.Location(), c.Description(), c.IsAvailable(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update car", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("car not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteCarSQL = `DELETE FROM cars WHERE id = $1`

func (r *CarRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteCarSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete car", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("car not found", nil, infra.KindNotFound)
	}
	return nil
}
