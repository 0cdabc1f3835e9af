package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/daterange"
)

// TripWhen is the short date label shown on the trip screen, e.g.
// "12 a 18 de jun.".
func TripWhen(trip api.Trip) string {
	return tripRange(trip).Label()
}

// InvitationText is the date span in the attendance prompt, e.g.
// "12 a 18 de junho".
func InvitationText(trip api.Trip) string {
	r := tripRange(trip)
	return fmt.Sprintf("%d a %d de %s", r.Start.DayOfMonth(), r.End.DayOfMonth(), daterange.MonthName(r.End.Month()))
}

// GuestsSummary is the guest field's text on the create screen. It is empty
// until someone is invited.
func GuestsSummary(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d pessoa(s) convidada(s)", n)
}

// DaySection is one day of the activities list.
type DaySection struct {
	DayNumber int
	DayName   string
	IsPast    bool
	Items     []ActivityItem
}

// ActivityItem is one row of a DaySection.
type ActivityItem struct {
	ID       uuid.UUID
	Title    string
	Hour     string
	IsBefore bool
}

// hourLayout renders a 24-hour clock, e.g. "20:00h".
const hourLayout = "15:04h"

// ActivitySections lays the activity days out for display relative to now.
// A day is past once now is later than its midnight; an activity is before
// now once its time has gone by.
func ActivitySections(days []api.ActivityDay, now time.Time) []DaySection {
	sections := make([]DaySection, 0, len(days))
	for _, d := range days {
		date := d.Date.Time
		sec := DaySection{
			DayNumber: date.Day(),
			DayName:   daterange.WeekdayName(date.Weekday()),
			IsPast:    now.After(date),
			Items:     make([]ActivityItem, 0, len(d.Activities)),
		}
		for _, a := range d.Activities {
			sec.Items = append(sec.Items, ActivityItem{
				ID:       a.ID,
				Title:    a.Title,
				Hour:     a.OccursAt.UTC().Format(hourLayout),
				IsBefore: a.OccursAt.Before(now),
			})
		}
		sections = append(sections, sec)
	}
	return sections
}
