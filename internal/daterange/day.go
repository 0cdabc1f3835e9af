// Package daterange implements calendar day selection for the trip planner.
// A Range is built up one clicked Day at a time by SelectDay, and exposes the
// derived calendar highlights (MarkedDates) and display text (Label) that the
// create-trip, edit-trip and new-activity flows render.
//
// Everything in this package is a pure value transformation: no I/O, no clocks,
// no shared state. Callers own their Range and pass it back in on every click.
package daterange

import (
	"fmt"
	"time"
)

// Layout is the text form of a Day, e.g. "2024-06-12".
// It is also the key format used by MarkedDates.
const Layout = "2006-01-02"

// Day is a calendar date with no time-of-day component.
// The zero Day means "no date selected".
type Day struct {
	// t is always midnight UTC so that comparisons and arithmetic never
	// cross a DST boundary.
	t time.Time
}

// NewDay returns the Day for the given year, month and day of month.
// Out-of-range values are normalised the same way time.Date does
// (e.g. June 31 becomes July 1).
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar day t falls on in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// ParseDay parses a "2006-01-02" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Day{}, fmt.Errorf("daterange.ParseDay: %w", err)
	}
	return Day{t: t}, nil
}

// IsZero reports whether d is the absent day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Year returns the calendar year of d.
func (d Day) Year() int { return d.t.Year() }

// Month returns the calendar month of d.
func (d Day) Month() time.Month { return d.t.Month() }

// DayOfMonth returns the day of the month of d, 1-31.
func (d Day) DayOfMonth() int { return d.t.Day() }

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

// Before reports whether d is strictly earlier than o.
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

// After reports whether d is strictly later than o.
func (d Day) After(o Day) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same calendar day.
func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Time returns midnight of d in UTC.
func (d Day) Time() time.Time { return d.t }

// In returns midnight of d in loc.
func (d Day) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.DayOfMonth(), 0, 0, 0, 0, loc)
}

// String returns the "2006-01-02" form, or "" for the zero Day.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty input yields
// the zero Day.
func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func minDay(a, b Day) Day {
	if b.Before(a) {
		return b
	}
	return a
}

func maxDay(a, b Day) Day {
	if b.After(a) {
		return b
	}
	return a
}
