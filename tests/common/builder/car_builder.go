//go:build unit || e2e

package builder

import (
	"time"

	"carshare/internal/domain/car"
	reqdto "carshare/internal/handler/dto/request"
	"carshare/internal/usecase/queries"
	"carshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type CarBuilder struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Make           string
	Model          string
	Year           int
	DailyRateCents int64
	Location       string
	Description    string
	IsAvailable    bool
}

func NewCarBuilder() *CarBuilder {
	return &CarBuilder{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2021,
		DailyRateCents: 5000,
		Location:       "Berlin",
		Description:    "Compact and reliable",
		IsAvailable:    true,
	}
}

func (c *CarBuilder) BuildDomain() *car.Car {
	now := time.Now()
	return car.ReconstructCar(
		c.ID, c.OwnerID,
		c.Make, c.Model,
		c.Year, c.DailyRateCents,
		c.Location, c.Description,
		c.IsAvailable,
		now, now,
	)
}

func (c *CarBuilder) BuildDTO() reqdto.CreateCarRequest {
	return reqdto.CreateCarRequest{
		Make:           c.Make,
		Model:          c.Model,
		Year:           c.Year,
		DailyRateCents: c.DailyRateCents,
		Location:       c.Location,
		Description:    c.Description,
	}
}

func (c *CarBuilder) BuildReadModel() *queries.CarView {
	now := time.Now()
	return &queries.CarView{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Make:           c.Make,
		Model:          c.Model,
		Year:           c.Year,
		DailyRateCents: c.DailyRateCents,
		Location:       c.Location,
		Description:    c.Description,
		IsAvailable:    c.IsAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *CarBuilder) BuildSnapshot() *shared.CarSnapshot {
	return &shared.CarSnapshot{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Make:           c.Make,
		Model:          c.Model,
		Year:           c.Year,
		DailyRateCents: c.DailyRateCents,
		Location:       c.Location,
		Description:    c.Description,
		IsAvailable:    c.IsAvailable,
	}
}

func (c *CarBuilder) WithOwner(ownerID uuid.UUID) *CarBuilder {
	c.OwnerID = ownerID
	return c
}

func (c *CarBuilder) WithDailyRate(cents int64) *CarBuilder {
	c.DailyRateCents = cents
	return c
}

func (c *CarBuilder) AsUnavailable() *CarBuilder {
	c.IsAvailable = false
	return c
}
