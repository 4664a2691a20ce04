package booking

import (
	"carshare/internal/domain/car"
)

type PriceCalculator interface {
	CalculatePriceCents(c *car.Car, period DatePeriod) int64
}

// DailyRateCalculator charges the car's daily rate per started day.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (pc *DailyRateCalculator) CalculatePriceCents(c *car.Car, period DatePeriod) int64 {
	return int64(period.Days()) * c.DailyRateCents()
}
