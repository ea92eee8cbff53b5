package streak

import (
	"fmt"
	"time"
)

// Date is a calendar day with no time-of-day and no zone. Two instants map to
// the same Date iff their wall-clock date in the projecting zone is identical.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf projects an instant into loc and strips the time-of-day. loc must be
// a real IANA location so DST transitions and offsets are honored.
func DateOf(instant time.Time, loc *time.Location) Date {
	y, m, d := instant.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as a fixed-width, zero-padded YYYY-MM-DD key.
// Lexicographic order on the result matches chronological order.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate is the exact inverse of String for well-formed input. Malformed
// input returns an error; it never silently normalizes to a different day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	d := Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	// time.Parse accepts a few shapes String never emits (e.g. 2024-1-02 is
	// rejected, but a round-trip check keeps the contract explicit).
	if d.String() != s {
		return Date{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return d, nil
}

// Next returns the following calendar day, normalizing month and year
// boundaries (Dec 31 -> Jan 1, leap days, and so on).
func (d Date) Next() Date {
	t := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Prev returns the preceding calendar day.
func (d Date) Prev() Date {
	t := time.Date(d.Year, d.Month, d.Day-1, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}
