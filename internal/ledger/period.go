package ledger

import (
	"fmt"
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod validates a year/month pair
func NewPeriod(year, month int) (Period, error) {
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidPeriod, month)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// PeriodOf returns the month t falls in, read in loc.
func PeriodOf(t time.Time, loc *time.Location) Period {
	local := t.In(loc)
	return Period{Year: local.Year(), Month: local.Month()}
}

// Start is the first instant of the month in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following month, so [Start, End) covers the month.
func (p Period) End(loc *time.Location) time.Time {
	return p.Start(loc).AddDate(0, 1, 0)
}

// Days returns the number of calendar days in the month
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t falls in the month as seen in loc.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	return PeriodOf(t, loc) == p
}

// Before orders periods chronologically.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
