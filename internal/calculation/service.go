package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/shopspring/decimal"
)

const secondsPerDay = 24 * 60 * 60

var (
	daysPerYear = decimal.NewFromInt(domain.DaysPerYear)
	hundred     = decimal.NewFromInt(100)
)

// ServiceDuration is the length of an employment relationship
type ServiceDuration struct {
	Start          time.Time
	End            time.Time
	DaysTotal      int             // inclusive of the start day
	Years          decimal.Decimal // DaysTotal / 365
	CompletedYears int
}

// ResolveService parses both calendar dates as UTC midnights and measures
// the service between them. Years use the fixed 365-day legal divisor.
func ResolveService(startDate, endDate string) (ServiceDuration, error) {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return ServiceDuration{}, fmt.Errorf("%w: start date %q", ErrInvalidDates, startDate)
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return ServiceDuration{}, fmt.Errorf("%w: end date %q", ErrInvalidDates, endDate)
	}
	if start.After(end) {
		return ServiceDuration{}, fmt.Errorf("%w: %s > %s", ErrInvertedDates, startDate, endDate)
	}

	daysTotal := inclusiveDays(start, end)
	return ServiceDuration{
		Start:          start,
		End:            end,
		DaysTotal:      daysTotal,
		Years:          decimal.NewFromInt(int64(daysTotal)).Div(daysPerYear),
		CompletedYears: daysTotal / domain.DaysPerYear,
	}, nil
}

// LastAnniversary is the most recent work anniversary counted by CompletedYears.
// A February 29 hire date rolls to March 1 in non-leap years.
func (s ServiceDuration) LastAnniversary() time.Time {
	return time.Date(s.Start.Year()+s.CompletedYears, s.Start.Month(), s.Start.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from one UTC midnight to another, excluding
// the later date. It works on Unix seconds since time.Duration saturates
// past roughly 292 years.
func DaysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// inclusiveDays counts calendar days from one date to another, both included
func inclusiveDays(from, to time.Time) int {
	return DaysBetween(from, to) + 1
}

// clampDays bounds a day count to 0..365
func clampDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > domain.DaysPerYear {
		return domain.DaysPerYear
	}
	return days
}
