package model

import (
	"fmt"
	"time"
)

// Period is the (month, year) pair every record is grouped by.
// Month is zero-based (0 = January) to match the persisted document.
type Period struct {
	Month int `json:"month" validate:"min=0,max=11"`
	Year  int `json:"year" validate:"min=1,max=9999"`
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()) - 1, Year: t.Year()}
}

// Add moves the period by n months, carrying overflow into the year.
func (p Period) Add(n int) Period {
	return PeriodOf(time.Date(p.Year, time.Month(p.Month+1+n), 1, 0, 0, 0, 0, time.UTC))
}

// Prev returns the month before p.
func (p Period) Prev() Period { return p.Add(-1) }

// Matches reports whether a record stamped with (month, year) belongs to p.
func (p Period) Matches(month, year int) bool {
	return p.Month == month && p.Year == year
}

// Valid reports whether the month is in 0..11 and the year is positive.
func (p Period) Valid() bool {
	return p.Month >= 0 && p.Month <= 11 && p.Year > 0
}

// FirstDay returns midnight UTC on the first day of the period.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, time.UTC)
}

// String renders the period as YYYY-MM with a one-based month.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month+1)
}
