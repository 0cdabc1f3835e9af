// Package calendar renders a trip as an iCalendar (RFC 5545) document so it
// can be imported into any calendar app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	productID = "-//plann.er//trip planner//PT"
	uidDomain = "plann.er"

	// activityDuration is how long an activity event lasts; activities only
	// carry a start time.
	activityDuration = time.Hour
)

// Build returns the trip as a calendar: one all-day event spanning the trip,
// carrying the saved links in its description, and one timed event per
// activity. now is stamped on every event as DTSTAMP.
func Build(exp domain.TripExport, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(exp.Trip.Destination)

	trip := cal.AddEvent(fmt.Sprintf("trip-%s@%s", exp.Trip.ID, uidDomain))
	trip.SetDtStampTime(now.UTC())
	trip.SetSummary("Viagem para " + exp.Trip.Destination)
	trip.SetLocation(exp.Trip.Destination)
	trip.SetAllDayStartAt(exp.Trip.StartsAt)
	// DTEND of an all-day event is exclusive.
	trip.SetAllDayEndAt(exp.Trip.EndsAt.AddDate(0, 0, 1))
	if desc := describe(exp); desc != "" {
		trip.SetDescription(desc)
	}

	for _, a := range exp.Activities {
		ev := cal.AddEvent(fmt.Sprintf("activity-%s@%s", a.ID, uidDomain))
		ev.SetDtStampTime(now.UTC())
		ev.SetSummary(a.Title)
		ev.SetLocation(exp.Trip.Destination)
		ev.SetStartAt(a.OccursAt.UTC())
		ev.SetEndAt(a.OccursAt.UTC().Add(activityDuration))
	}
	return cal
}

// Serialize renders Build's calendar as text/calendar content.
func Serialize(exp domain.TripExport, now time.Time) string {
	return Build(exp, now).Serialize()
}

// describe lists the confirmed participants and the trip links.
func describe(exp domain.TripExport) string {
	var b strings.Builder
	var confirmed []string
	for _, p := range exp.Participants {
		if p.IsConfirmed {
			confirmed = append(confirmed, displayName(p))
		}
	}
	if len(confirmed) > 0 {
		b.WriteString("Participantes: ")
		b.WriteString(strings.Join(confirmed, ", "))
		b.WriteString("\n")
	}
	for _, l := range exp.Links {
		fmt.Fprintf(&b, "%s: %s\n", l.Title, l.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func displayName(p domain.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}
