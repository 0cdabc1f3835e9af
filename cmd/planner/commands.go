package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/daterange"
	"github.com/pkordes/trip-planner/internal/planner"
)

var errNoTrip = errors.New(`no current trip: create one with "planner trip new" or pass -trip`)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func tripFlag(fs *flag.FlagSet, id *uuid.UUID) {
	fs.TextVar(id, "trip", uuid.Nil, "trip id (default: the trip saved on this device)")
}

// trip loads the trip named by id, or the device's current trip when id is nil.
func (c *cli) trip(ctx context.Context, p *planner.Planner, id uuid.UUID) (api.Trip, error) {
	if id != uuid.Nil {
		return p.TripDetails(ctx, id)
	}
	trip, ok, err := p.CurrentTrip(ctx)
	if err != nil {
		return api.Trip{}, err
	}
	if !ok {
		return api.Trip{}, errNoTrip
	}
	return trip, nil
}

func (c *cli) pick(args []string) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	var minDay, maxDay daterange.Day
	fs.TextVar(&minDay, "min", daterange.Day{}, "earliest selectable day (YYYY-MM-DD)")
	fs.TextVar(&maxDay, "max", daterange.Day{}, "latest selectable day (YYYY-MM-DD)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: pick needs at least one day", errUsage)
	}

	bounds := daterange.Bounds{Min: minDay, Max: maxDay}
	var r daterange.Range
	for _, s := range fs.Args() {
		d, err := daterange.ParseDay(s)
		if err != nil {
			return fmt.Errorf("%w: %q is not a YYYY-MM-DD day", errUsage, s)
		}
		if !bounds.Allows(d) {
			fmt.Fprintf(c.out, "ignored %s: not selectable\n", d)
			continue
		}
		r = daterange.SelectDay(r, d)
	}

	marks := r.MarkedDates()
	for _, day := range slices.Sorted(maps.Keys(marks)) {
		fmt.Fprintf(c.out, "%s  %s\n", day, marks[day].Kind)
	}
	if label := r.Label(); label != "" {
		fmt.Fprintln(c.out, label)
	}
	return nil
}

func (c *cli) tripNew(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip new", flag.ContinueOnError)
	destination := fs.String("destination", "", "where the trip goes")
	var from, to daterange.Day
	fs.TextVar(&from, "from", daterange.Day{}, "first day (YYYY-MM-DD)")
	fs.TextVar(&to, "to", daterange.Day{}, "last day (YYYY-MM-DD)")
	var guests stringList
	fs.Var(&guests, "invite", "guest e-mail, repeatable")
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your e-mail")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	form := planner.NewTripForm(daterange.DayOf(c.now()))
	form.Destination = *destination
	for _, d := range []daterange.Day{from, to} {
		if !d.IsZero() && !form.SelectDay(d) {
			return fmt.Errorf("%s is in the past", d)
		}
	}
	if err := form.Next(); err != nil {
		return err
	}
	for _, g := range guests {
		if err := form.AddEmail(g); err != nil {
			return err
		}
	}
	form.OwnerName, form.OwnerEmail = *name, *email
	req, err := form.Request()
	if err != nil {
		return err
	}

	p, err := c.open()
	if err != nil {
		return err
	}
	id, err := p.CreateTrip(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Viagem criada: %s\n%s, %s\n%s\n", id, req.Destination, form.Dates.Label(), planner.GuestsSummary(len(req.EmailsToInvite)))
	fmt.Fprintln(c.out, "Confirme a viagem pelo link enviado para o seu e-mail.")
	return nil
}

func (c *cli) tripShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip show", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	status := "aguardando confirmação"
	if trip.IsConfirmed {
		status = "confirmada"
	}
	fmt.Fprintf(c.out, "%s\n%s\n%s\nid: %s\n", trip.Destination, planner.TripWhen(trip), status, trip.ID)
	return nil
}

func (c *cli) tripUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip update", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	destination := fs.String("destination", "", "new destination (default: unchanged)")
	var from, to daterange.Day
	fs.TextVar(&from, "from", daterange.Day{}, "new first day (YYYY-MM-DD)")
	fs.TextVar(&to, "to", daterange.Day{}, "new last day (YYYY-MM-DD)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}

	form := planner.NewTripEditForm(trip, daterange.DayOf(c.now()))
	if *destination != "" {
		form.Destination = *destination
	}
	if !from.IsZero() || !to.IsZero() {
		form.Dates = daterange.Range{}
		for _, d := range []daterange.Day{from, to} {
			if !d.IsZero() && !form.SelectDay(d) {
				return fmt.Errorf("%s is in the past", d)
			}
		}
	}
	req, err := form.Request()
	if err != nil {
		return err
	}
	if err := p.UpdateTrip(ctx, trip.ID, req); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Viagem atualizada: %s, %s\n", req.Destination, form.Dates.Label())
	return nil
}

func (c *cli) tripConfirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip confirm", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	if err := p.ConfirmTrip(ctx, trip.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Viagem para %s confirmada. Os convidados vão receber um e-mail.\n", trip.Destination)
	return nil
}

func (c *cli) tripForget(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trip forget", flag.ContinueOnError)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	if err := p.ForgetTrip(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Viagem removida deste dispositivo.")
	return nil
}

func (c *cli) confirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ContinueOnError)
	var tripID, participantID uuid.UUID
	fs.TextVar(&tripID, "trip", uuid.Nil, "trip id from the invitation link")
	fs.TextVar(&participantID, "participant", uuid.Nil, "participant id from the invitation link")
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "the e-mail the invitation was sent to")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if tripID == uuid.Nil || participantID == uuid.Nil {
		return fmt.Errorf("%w: confirm needs -trip and -participant", errUsage)
	}
	req, err := planner.AttendanceForm{Name: *name, Email: *email}.Request()
	if err != nil {
		return err
	}

	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := p.TripDetails(ctx, tripID)
	if err != nil {
		return err
	}
	if err := p.ConfirmAttendance(ctx, tripID, participantID, req); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Presença confirmada na viagem para %s, de %s.\n", trip.Destination, planner.InvitationText(trip))
	return nil
}

func (c *cli) invite(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("invite", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	email := fs.String("email", "", "guest e-mail")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	addr, err := planner.InviteEmail(*email)
	if err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	if _, err := p.Invite(ctx, trip.ID, addr); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Convidado adicionado: %s\n", addr)
	return nil
}

func (c *cli) participants(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("participants", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	ps, err := p.Participants(ctx, trip.ID)
	if err != nil {
		return err
	}
	for _, pt := range ps {
		name := "Pendente"
		if pt.Name != nil && *pt.Name != "" {
			name = *pt.Name
		}
		status := "não confirmado"
		if pt.IsConfirmed {
			status = "confirmado"
		}
		fmt.Fprintf(c.out, "%s <%s> %s\n", name, pt.Email, status)
	}
	return nil
}

func (c *cli) activityAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activity add", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	title := fs.String("title", "", "what happens")
	var date daterange.Day
	fs.TextVar(&date, "date", daterange.Day{}, "day of the activity (YYYY-MM-DD)")
	hour := fs.String("hour", "", "hour of the day, 0-23")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}

	form := planner.NewActivityForm(trip)
	form.Title = *title
	if !date.IsZero() && !form.SelectDay(date) {
		return fmt.Errorf("%s is outside the trip (%s)", date, planner.TripWhen(trip))
	}
	form.SetHour(*hour)
	req, err := form.Request()
	if err != nil {
		return err
	}
	if _, err := p.CreateActivity(ctx, trip.ID, req); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Atividade cadastrada: %s\n", req.Title)
	return nil
}

func (c *cli) activityList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activity list", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	days, err := p.Activities(ctx, trip.ID)
	if err != nil {
		return err
	}
	for _, s := range planner.ActivitySections(days, c.now()) {
		fmt.Fprintf(c.out, "Dia %d %s\n", s.DayNumber, s.DayName)
		if len(s.Items) == 0 {
			fmt.Fprintln(c.out, "  Nenhuma atividade cadastrada nessa data.")
		}
		for _, it := range s.Items {
			done := " "
			if it.IsBefore {
				done = "x"
			}
			fmt.Fprintf(c.out, "  [%s] %s  %s\n", done, it.Hour, it.Title)
		}
	}
	return nil
}

func (c *cli) linkAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("link add", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	title := fs.String("title", "", "link title")
	url := fs.String("url", "", "http(s) URL")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	req, err := planner.LinkForm{Title: *title, URL: *url}.Request()
	if err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	if _, err := p.CreateLink(ctx, trip.ID, req); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Link cadastrado: %s\n", req.Title)
	return nil
}

func (c *cli) linkList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("link list", flag.ContinueOnError)
	var id uuid.UUID
	tripFlag(fs, &id)
	if err := c.parse(fs, args); err != nil {
		return err
	}
	p, err := c.open()
	if err != nil {
		return err
	}
	trip, err := c.trip(ctx, p, id)
	if err != nil {
		return err
	}
	links, err := p.Links(ctx, trip.ID)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintln(c.out, "Nenhum link adicionado.")
	}
	for _, l := range links {
		fmt.Fprintf(c.out, "%s  %s\n", l.Title, l.URL)
	}
	return nil
}
