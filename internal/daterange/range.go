package daterange

import "fmt"

// Range is a calendar selection with two optional endpoints.
//
// Invariant: when both Start and End are set, Start is not after End,
// regardless of the order in which the two days were clicked.
// A Range with only Start set is a selection in progress.
type Range struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

// SelectDay applies one calendar click to current and returns the new range.
//
//   - (empty, empty): clicked becomes Start.
//   - (start, empty): clicking Start again keeps the single-day start as is;
//     any other day completes the range, ordered chronologically.
//   - (start, end): the old range is discarded and clicked starts a new one.
//
// SelectDay never fails. Rejecting days outside a flow's allowed window is the
// caller's job; see Bounds.
func SelectDay(current Range, clicked Day) Range {
	switch {
	case current.Start.IsZero():
		return Range{Start: clicked}
	case current.End.IsZero():
		if clicked.Equal(current.Start) {
			return current
		}
		return Range{
			Start: minDay(current.Start, clicked),
			End:   maxDay(current.Start, clicked),
		}
	default:
		return Range{Start: clicked}
	}
}

// IsEmpty reports whether nothing has been selected.
func (r Range) IsEmpty() bool { return r.Start.IsZero() && r.End.IsZero() }

// IsComplete reports whether both endpoints are set.
func (r Range) IsComplete() bool { return !r.Start.IsZero() && !r.End.IsZero() }

// Contains reports whether d lies within a complete range, endpoints included.
// A range with only Start set contains just that day.
func (r Range) Contains(d Day) bool {
	if r.Start.IsZero() {
		return false
	}
	if r.End.IsZero() {
		return d.Equal(r.Start)
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns every day from Start to End inclusive, in order.
// With only Start set it returns that single day; an empty range yields nil.
func (r Range) Days() []Day {
	if r.Start.IsZero() {
		return nil
	}
	if r.End.IsZero() || !r.End.After(r.Start) {
		return []Day{r.Start}
	}
	var days []Day
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Label formats a complete range as "{startDay} a {endDay} de {month}.",
// e.g. "12 a 18 de jun.". The month is the end date's abbreviated pt-BR name.
// A range without an End has no label yet and yields "".
func (r Range) Label() string {
	if !r.IsComplete() {
		return ""
	}
	return fmt.Sprintf("%02d a %02d de %s.", r.Start.DayOfMonth(), r.End.DayOfMonth(), MonthAbbrev(r.End.Month()))
}

// Bounds restricts which days a flow accepts, e.g. "not before today" when
// creating a trip, or "within the trip" when scheduling an activity.
// A zero Min or Max leaves that side open.
type Bounds struct {
	Min Day
	Max Day
}

// Allows reports whether d falls inside the bounds.
func (b Bounds) Allows(d Day) bool {
	if !b.Min.IsZero() && d.Before(b.Min) {
		return false
	}
	if !b.Max.IsZero() && d.After(b.Max) {
		return false
	}
	return true
}
