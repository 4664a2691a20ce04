package car

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMake       = errors.New("car make cannot be empty")
	ErrEmptyModel      = errors.New("car model cannot be empty")
	ErrInvalidYear     = errors.New("car year is out of range")
	ErrInvalidRate     = errors.New("daily rate must be positive")
	ErrEmptyLocation   = errors.New("car location cannot be empty")
	ErrFieldTooLong    = errors.New("field is too long (max 255 characters)")
	ErrDescriptionLong = errors.New("description is too long (max 2000 characters)")
)

const (
	MaxFieldLength       = 255
	MaxDescriptionLength = 2000
	MinYear              = 1950
)

type Car struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	make             string
	model            string
	year             int
	dailyRateCents   int64
	location         string
	description      string
	isAvailable      bool
	createdAt        time.Time
	updatedAt        time.Time
}

func NewCar(ownerID uuid.UUID, make, model string, year int, dailyRateCents int64, location, description string) (*Car, error) {
	if err := validate(make, model, year, dailyRateCents, location, description); err != nil {
		return nil, err
	}

	return &Car{
		id:             uuid.New(),
		ownerID:        ownerID,
		make:           strings.TrimSpace(make),
		model:          strings.TrimSpace(model),
		year:           year,
		dailyRateCents: dailyRateCents,
		location:       strings.TrimSpace(location),
		description:    description,
		isAvailable:    true,
	}, nil
}

func ReconstructCar(
	id, ownerID uuid.UUID,
	make, model string,
	year int,
	dailyRateCents int64,
	location, description string,
	isAvailable bool,
	createdAt, updatedAt time.Time,
) *Car {
	return &Car{
		id:             id,
		ownerID:        ownerID,
		make:           make,
		model:          model,
		year:           year,
		dailyRateCents: dailyRateCents,
		location:       location,
		description:    description,
		isAvailable:    isAvailable,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func validate(make, model string, year int, dailyRateCents int64, location, description string) error {
	if strings.TrimSpace(make) == "" {
		return ErrEmptyMake
	}
	if strings.TrimSpace(model) == "" {
		return ErrEmptyModel
	}
	if len(make) > MaxFieldLength || len(model) > MaxFieldLength {
		return ErrFieldTooLong
	}
	if year < MinYear || year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	if dailyRateCents <= 0 {
		return ErrInvalidRate
	}
	if strings.TrimSpace(location) == "" {
		return ErrEmptyLocation
	}
	if len(location) > MaxFieldLength {
		return ErrFieldTooLong
	}
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	return nil
}

// UpdateDetails replaces the mutable listing fields after validating the
// combined result.
func (c *Car) UpdateDetails(make, model string, year int, dailyRateCents int64, location, description string, isAvailable bool) error {
	if err := validate(make, model, year, dailyRateCents, location, description); err != nil {
		return err
	}
	c.make = strings.TrimSpace(make)
	c.model = strings.TrimSpace(model)
	c.year = year
	c.dailyRateCents = dailyRateCents
	c.location = strings.TrimSpace(location)
	c.description = description
	c.isAvailable = isAvailable
	return nil
}

func (c *Car) IsOwnedBy(userID uuid.UUID) bool {
	return c.ownerID == userID
}

func (c *Car) ID() uuid.UUID         { return c.id }
func (c *Car) OwnerID() uuid.UUID    { return c.ownerID }
func (c *Car) Make() string          { return c.make }
func (c *Car) Model() string         { return c.model }
func (c *Car) Year() int             { return c.year }
func (c *Car) DailyRateCents() int64 { return c.dailyRateCents }
func (c *Car) Location() string      { return c.location }
func (c *Car) Description() string   { return c.description }
func (c *Car) IsAvailable() bool     { return c.isAvailable }
func (c *Car) CreatedAt() time.Time  { return c.createdAt }
func (c *Car) UpdatedAt() time.Time  { return c.updatedAt }
