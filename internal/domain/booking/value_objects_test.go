//go:build unit

package booking_test

import (
	"testing"
	"time"

	"carshare/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestNewDatePeriod(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{
			name:  "start before end",
			start: day0,
			end:   day0.AddDate(0, 0, 3),
		},
		{
			name:  "start equals end",
			start: day0,
			end:   day0,
			errIs: booking.ErrInvalidDateRange,
		},
		{
			name:  "start after end",
			start: day0.AddDate(0, 0, 3),
			end:   day0,
			errIs: booking.ErrInvalidDateRange,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			period, err := booking.NewDatePeriod(c.start, c.end)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.start, period.Start())
			assert.Equal(t, c.end, period.End())
		})
	}

	t.Run("zoned inputs are stored in UTC", func(t *testing.T) {
		berlin := time.FixedZone("CET", 1*60*60)
		start := time.Date(2026, 1, 10, 10, 0, 0, 0, berlin)
		end := time.Date(2026, 1, 13, 10, 0, 0, 0, berlin)

		period, err := booking.NewDatePeriod(start, end)
		require.NoError(t, err)
		assert.Equal(t, time.UTC, period.Start().Location())
		assert.Equal(t, time.UTC, period.End().Location())
		assert.True(t, period.Start().Equal(start))
		assert.True(t, period.End().Equal(end))
	})
}

func TestDatePeriod_Days(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "exact three days",
			start: day0,
			end:   day0.AddDate(0, 0, 3),
			want:  3,
		},
		{
			name:  "partial day rounds up",
			start: day0.Add(12 * time.Hour),
			end:   day0.AddDate(0, 0, 2).Add(18 * time.Hour),
			want:  3,
		},
		{
			name:  "a few hours counts as one day",
			start: day0,
			end:   day0.Add(4 * time.Hour),
			want:  1,
		},
		{
			name:  "one day plus one minute counts as two days",
			start: day0,
			end:   day0.AddDate(0, 0, 1).Add(time.Minute),
			want:  2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			period, err := booking.NewDatePeriod(c.start, c.end)
			require.NoError(t, err)
			assert.Equal(t, c.want, period.Days())
		})
	}
}

func TestDatePeriod_Overlaps(t *testing.T) {
	base, err := booking.NewDatePeriod(day0, day0.AddDate(0, 0, 5))
	require.NoError(t, err)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "starts inside",
			start: day0.AddDate(0, 0, 2),
			end:   day0.AddDate(0, 0, 8),
			want:  true,
		},
		{
			name:  "ends inside",
			start: day0.AddDate(0, 0, -2),
			end:   day0.AddDate(0, 0, 2),
			want:  true,
		},
		{
			name:  "fully contains",
			start: day0.AddDate(0, 0, -1),
			end:   day0.AddDate(0, 0, 6),
			want:  true,
		},
		{
			name:  "fully contained",
			start: day0.AddDate(0, 0, 1),
			end:   day0.AddDate(0, 0, 4),
			want:  true,
		},
		{
			name:  "touches end boundary",
			start: day0.AddDate(0, 0, 5),
			end:   day0.AddDate(0, 0, 10),
			want:  false,
		},
		{
			name:  "touches start boundary",
			start: day0.AddDate(0, 0, -5),
			end:   day0,
			want:  false,
		},
		{
			name:  "disjoint after",
			start: day0.AddDate(0, 0, 7),
			end:   day0.AddDate(0, 0, 9),
			want:  false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			other, err := booking.NewDatePeriod(c.start, c.end)
			require.NoError(t, err)
			assert.Equal(t, c.want, base.Overlaps(other))
			assert.Equal(t, c.want, other.Overlaps(base))
		})
	}
}

func TestNewMoney(t *testing.T) {
	m, err := booking.NewMoney(15000)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), m.Cents())
	assert.Equal(t, 150.0, m.Units())

	_, err = booking.NewMoney(-1)
	require.ErrorIs(t, err, booking.ErrNegativePrice)
}
