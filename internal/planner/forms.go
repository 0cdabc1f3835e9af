package planner

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/daterange"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/validate"
)

// minDestinationLength matches the server's rule.
const minDestinationLength = 4

// FormError is a user-facing validation message. It unwraps to
// domain.ErrValidation.
type FormError struct {
	Title   string
	Message string
}

func (e *FormError) Error() string { return e.Title + ": " + e.Message }

func (e *FormError) Unwrap() error { return domain.ErrValidation }

func formErr(title, msg string) error { return &FormError{Title: title, Message: msg} }

// Step is where the create-trip flow currently is.
type Step int

const (
	StepTripDetails Step = iota
	StepAddEmails
)

func (s Step) String() string {
	if s == StepAddEmails {
		return "add_emails"
	}
	return "trip_details"
}

const (
	titleNewTrip    = "Nova viagem"
	titleUpdateTrip = "Atualizar viagem"
	titleConfirm    = "Confirmar presença"
	titleActivity   = "Cadastrar atividade"
	titleLink       = "Cadastrar link"
	titleGuests     = "Selecionar convidados"
)

// TripForm is the two-step create-trip flow: destination and dates first,
// then the guest list.
type TripForm struct {
	Destination string
	Dates       daterange.Range
	Emails      []string
	OwnerName   string
	OwnerEmail  string

	step   Step
	bounds daterange.Bounds
}

// NewTripForm starts a form that refuses days before today.
func NewTripForm(today daterange.Day) *TripForm {
	return &TripForm{bounds: daterange.Bounds{Min: today}}
}

// Step returns the current step.
func (f *TripForm) Step() Step { return f.step }

// SelectDay applies a calendar click. Days before today are ignored and
// reported as false.
func (f *TripForm) SelectDay(d daterange.Day) bool {
	if !f.bounds.Allows(d) {
		return false
	}
	f.Dates = daterange.SelectDay(f.Dates, d)
	return true
}

// Next moves from the trip details to the guest list once destination and
// dates are filled in.
func (f *TripForm) Next() error {
	if f.step != StepTripDetails {
		return nil
	}
	if err := checkTrip(titleNewTrip, f.Destination, f.Dates); err != nil {
		return err
	}
	f.step = StepAddEmails
	return nil
}

// Prev goes back to the trip details, keeping everything entered.
func (f *TripForm) Prev() { f.step = StepTripDetails }

// AddEmail adds a guest. Addresses are lower-cased before they are compared.
func (f *TripForm) AddEmail(raw string) error {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !validate.Email(email) {
		return formErr(titleGuests, "Informe um e-mail válido.")
	}
	if slices.Contains(f.Emails, email) {
		return formErr(titleGuests, "Esse convidado já foi adicionado.")
	}
	f.Emails = append(f.Emails, email)
	return nil
}

// RemoveEmail drops a guest; unknown addresses are ignored.
func (f *TripForm) RemoveEmail(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	f.Emails = slices.DeleteFunc(f.Emails, func(e string) bool { return e == email })
}

// Request builds the create request. Trip dates are sent as midnight UTC.
func (f *TripForm) Request() (api.CreateTripRequest, error) {
	if err := checkTrip(titleNewTrip, f.Destination, f.Dates); err != nil {
		return api.CreateTripRequest{}, err
	}
	if len(f.Emails) == 0 {
		return api.CreateTripRequest{}, formErr(titleNewTrip, "Convide ao menos uma pessoa para a viagem.")
	}
	name := strings.TrimSpace(f.OwnerName)
	email := strings.ToLower(strings.TrimSpace(f.OwnerEmail))
	if name == "" || email == "" {
		return api.CreateTripRequest{}, formErr(titleNewTrip, "Informe seu nome e e-mail para criar a viagem.")
	}
	if !validate.Email(email) {
		return api.CreateTripRequest{}, formErr(titleNewTrip, "Informe um e-mail válido.")
	}
	return api.CreateTripRequest{
		Destination:    strings.TrimSpace(f.Destination),
		StartsAt:       f.Dates.Start.Time(),
		EndsAt:         f.Dates.End.Time(),
		EmailsToInvite: slices.Clone(f.Emails),
		OwnerName:      name,
		OwnerEmail:     email,
	}, nil
}

// Reset empties the form and returns it to the first step.
func (f *TripForm) Reset() {
	*f = TripForm{bounds: f.bounds}
}

// TripEditForm edits an existing trip's destination and dates.
type TripEditForm struct {
	Destination string
	Dates       daterange.Range

	bounds daterange.Bounds
}

// NewTripEditForm is prefilled from trip and, like the create flow, refuses
// days before today.
func NewTripEditForm(trip api.Trip, today daterange.Day) *TripEditForm {
	return &TripEditForm{
		Destination: trip.Destination,
		Dates:       tripRange(trip),
		bounds:      daterange.Bounds{Min: today},
	}
}

// SelectDay applies a calendar click. Days before today are ignored and
// reported as false.
func (f *TripEditForm) SelectDay(d daterange.Day) bool {
	if !f.bounds.Allows(d) {
		return false
	}
	f.Dates = daterange.SelectDay(f.Dates, d)
	return true
}

// Request builds the update request.
func (f *TripEditForm) Request() (api.UpdateTripRequest, error) {
	if err := checkTrip(titleUpdateTrip, f.Destination, f.Dates); err != nil {
		return api.UpdateTripRequest{}, err
	}
	return api.UpdateTripRequest{
		Destination: strings.TrimSpace(f.Destination),
		StartsAt:    f.Dates.Start.Time(),
		EndsAt:      f.Dates.End.Time(),
	}, nil
}

func checkTrip(title, destination string, dates daterange.Range) error {
	dest := strings.TrimSpace(destination)
	if dest == "" || !dates.IsComplete() {
		return formErr(title, "Preencha todas as informações da viagem para seguir.")
	}
	if utf8.RuneCountInString(dest) < minDestinationLength {
		return formErr(title, "O destino da viagem deve ter pelo menos 4 caracteres.")
	}
	return nil
}

// AttendanceForm is the guest's confirmation of an invitation.
type AttendanceForm struct {
	Name  string
	Email string
}

// Request builds the confirmation request.
func (f AttendanceForm) Request() (api.ConfirmParticipantRequest, error) {
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	if name == "" || email == "" {
		return api.ConfirmParticipantRequest{}, formErr(titleConfirm, "Informe seu nome e e-mail corretamente para confirmar a viagem.")
	}
	if !validate.Email(email) {
		return api.ConfirmParticipantRequest{}, formErr(titleConfirm, "Informe um e-mail válido para confirmar a viagem.")
	}
	return api.ConfirmParticipantRequest{Name: name, Email: email}, nil
}

// ActivityForm schedules one activity on a day of the trip.
type ActivityForm struct {
	Title string
	Date  daterange.Day

	hour   string
	bounds daterange.Bounds
}

// NewActivityForm only accepts days within trip.
func NewActivityForm(trip api.Trip) *ActivityForm {
	r := tripRange(trip)
	return &ActivityForm{bounds: daterange.Bounds{Min: r.Start, Max: r.End}}
}

// SelectDay picks the activity's date. Days outside the trip are ignored and
// reported as false.
func (f *ActivityForm) SelectDay(d daterange.Day) bool {
	if !f.bounds.Allows(d) {
		return false
	}
	f.Date = d
	return true
}

// SetHour filters typed input down to at most two digits, the way the hour
// field does, and returns what was kept.
func (f *ActivityForm) SetHour(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == 2 {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	f.hour = b.String()
	return f.hour
}

// Hour returns the filtered hour text.
func (f *ActivityForm) Hour() string { return f.hour }

// Request builds the create request; occurs_at is the date at the given hour,
// UTC.
func (f *ActivityForm) Request() (api.CreateActivityRequest, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" || f.Date.IsZero() || f.hour == "" {
		return api.CreateActivityRequest{}, formErr(titleActivity, "Preencha todas as informações da atividade.")
	}
	h, err := strconv.Atoi(f.hour)
	if err != nil || h > 23 {
		return api.CreateActivityRequest{}, formErr(titleActivity, "Informe uma hora entre 0 e 23.")
	}
	return api.CreateActivityRequest{
		Title:    title,
		OccursAt: f.Date.Time().Add(time.Duration(h) * time.Hour),
	}, nil
}

// Reset clears the fields, keeping the trip bounds.
func (f *ActivityForm) Reset() {
	*f = ActivityForm{bounds: f.bounds}
}

// LinkForm saves one link.
type LinkForm struct {
	Title string
	URL   string
}

// Request builds the create request.
func (f LinkForm) Request() (api.CreateLinkRequest, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return api.CreateLinkRequest{}, formErr(titleLink, "Informe um título para o link.")
	}
	u := strings.TrimSpace(f.URL)
	if !validate.URL(u) {
		return api.CreateLinkRequest{}, formErr(titleLink, "Informe uma URL válida para o link.")
	}
	return api.CreateLinkRequest{Title: title, URL: u}, nil
}

// InviteEmail validates a single address for the invite modal.
func InviteEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !validate.Email(email) {
		return "", formErr(titleGuests, "Informe um e-mail válido.")
	}
	return email, nil
}

func tripRange(t api.Trip) daterange.Range {
	return daterange.Range{
		Start: daterange.DayOf(t.StartsAt.UTC()),
		End:   daterange.DayOf(t.EndsAt.UTC()),
	}
}
