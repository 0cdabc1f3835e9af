package planner_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/daterange"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/planner"
)

func formMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	var fe *planner.FormError
	require.True(t, errors.As(err, &fe))
	return fe.Message
}

func TestTripForm_SelectDayRespectsToday(t *testing.T) {
	today := daterange.NewDay(2024, time.June, 10)
	f := planner.NewTripForm(today)

	assert.False(t, f.SelectDay(today.AddDays(-1)))
	assert.True(t, f.Dates.IsEmpty())

	assert.True(t, f.SelectDay(today.AddDays(5)))
	assert.True(t, f.SelectDay(today))
	assert.Equal(t, today, f.Dates.Start)
	assert.Equal(t, today.AddDays(5), f.Dates.End)
}

func TestTripForm_Next(t *testing.T) {
	today := daterange.NewDay(2024, time.June, 10)

	tests := []struct {
		name        string
		destination string
		clicks      []int
		wantMsg     string
	}{
		{name: "blank destination", destination: "   ", clicks: []int{1, 3}, wantMsg: "Preencha todas as informações da viagem para seguir."},
		{name: "range incomplete", destination: "Recife", clicks: []int{1}, wantMsg: "Preencha todas as informações da viagem para seguir."},
		{name: "destination too short", destination: " Rio ", clicks: []int{1, 3}, wantMsg: "O destino da viagem deve ter pelo menos 4 caracteres."},
		{name: "ok", destination: "Natal", clicks: []int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := planner.NewTripForm(today)
			f.Destination = tt.destination
			for _, n := range tt.clicks {
				f.SelectDay(today.AddDays(n))
			}
			err := f.Next()
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, formMessage(t, err))
				assert.Equal(t, planner.StepTripDetails, f.Step())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, planner.StepAddEmails, f.Step())

			f.Prev()
			assert.Equal(t, planner.StepTripDetails, f.Step())
			assert.Equal(t, tt.destination, f.Destination)
		})
	}
}

func TestTripForm_Emails(t *testing.T) {
	f := planner.NewTripForm(daterange.NewDay(2024, time.June, 10))

	require.NoError(t, f.AddEmail(" Ana@Example.com "))
	assert.Equal(t, "Esse convidado já foi adicionado.", formMessage(t, f.AddEmail("ana@example.com")))
	assert.Equal(t, "Informe um e-mail válido.", formMessage(t, f.AddEmail("ana@example")))
	require.NoError(t, f.AddEmail("bia@example.com"))
	assert.Equal(t, []string{"ana@example.com", "bia@example.com"}, f.Emails)

	f.RemoveEmail("ANA@example.com")
	f.RemoveEmail("nobody@example.com")
	assert.Equal(t, []string{"bia@example.com"}, f.Emails)
}

func TestTripForm_Request(t *testing.T) {
	today := daterange.NewDay(2024, time.June, 10)
	f := planner.NewTripForm(today)
	f.Destination = "  Florianópolis "
	f.SelectDay(today.AddDays(8))
	f.SelectDay(today.AddDays(2))
	require.NoError(t, f.Next())

	_, err := f.Request()
	assert.Equal(t, "Convide ao menos uma pessoa para a viagem.", formMessage(t, err))

	require.NoError(t, f.AddEmail("ana@example.com"))
	_, err = f.Request()
	assert.Equal(t, "Informe seu nome e e-mail para criar a viagem.", formMessage(t, err))

	f.OwnerName = "Diego"
	f.OwnerEmail = "Diego@Example.com"
	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, "Florianópolis", req.Destination)
	assert.Equal(t, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC), req.StartsAt)
	assert.Equal(t, time.Date(2024, time.June, 18, 0, 0, 0, 0, time.UTC), req.EndsAt)
	assert.Equal(t, []string{"ana@example.com"}, req.EmailsToInvite)
	assert.Equal(t, "Diego", req.OwnerName)
	assert.Equal(t, "diego@example.com", req.OwnerEmail)
}

func TestTripForm_Reset(t *testing.T) {
	today := daterange.NewDay(2024, time.June, 10)
	f := planner.NewTripForm(today)
	f.Destination = "Natal"
	f.SelectDay(today.AddDays(1))
	f.SelectDay(today.AddDays(2))
	require.NoError(t, f.Next())
	require.NoError(t, f.AddEmail("ana@example.com"))

	f.Reset()

	assert.Equal(t, planner.StepTripDetails, f.Step())
	assert.Empty(t, f.Destination)
	assert.True(t, f.Dates.IsEmpty())
	assert.Empty(t, f.Emails)
	assert.False(t, f.SelectDay(today.AddDays(-1)), "bounds survive reset")
}

func TestTripEditForm(t *testing.T) {
	trip := sampleTrip()
	f := planner.NewTripEditForm(trip, daterange.NewDay(2024, time.June, 1))
	assert.Equal(t, daterange.NewDay(2024, time.June, 12), f.Dates.Start)
	assert.Equal(t, daterange.NewDay(2024, time.June, 18), f.Dates.End)

	assert.True(t, f.SelectDay(daterange.NewDay(2024, time.July, 2)))
	_, err := f.Request()
	assert.Equal(t, "Preencha todas as informações da viagem para seguir.", formMessage(t, err))

	assert.True(t, f.SelectDay(daterange.NewDay(2024, time.July, 1)))
	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, trip.Destination, req.Destination)
	assert.Equal(t, utc(2024, time.July, 1, 0), req.StartsAt)
	assert.Equal(t, utc(2024, time.July, 2, 0), req.EndsAt)
}

func TestTripEditForm_RejectsPastDays(t *testing.T) {
	trip := sampleTrip()
	f := planner.NewTripEditForm(trip, daterange.NewDay(2024, time.June, 1))

	assert.False(t, f.SelectDay(daterange.NewDay(1999, time.January, 1)))
	assert.False(t, f.SelectDay(daterange.NewDay(2024, time.May, 31)))
	assert.Equal(t, daterange.NewDay(2024, time.June, 12), f.Dates.Start, "refused clicks leave the range alone")
	assert.True(t, f.SelectDay(daterange.NewDay(2024, time.June, 1)), "today is selectable")
	assert.True(t, f.SelectDay(daterange.NewDay(2024, time.June, 18)))

	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, utc(2024, time.June, 1, 0), req.StartsAt)
	assert.Equal(t, utc(2024, time.June, 18, 0), req.EndsAt)
}

func TestAttendanceForm(t *testing.T) {
	_, err := planner.AttendanceForm{Name: " ", Email: "ana@example.com"}.Request()
	assert.Equal(t, "Informe seu nome e e-mail corretamente para confirmar a viagem.", formMessage(t, err))

	_, err = planner.AttendanceForm{Name: "Ana", Email: "ana.example.com"}.Request()
	assert.Equal(t, "Informe um e-mail válido para confirmar a viagem.", formMessage(t, err))

	req, err := planner.AttendanceForm{Name: " Ana ", Email: " ana@example.com"}.Request()
	require.NoError(t, err)
	assert.Equal(t, "Ana", req.Name)
	assert.Equal(t, "ana@example.com", req.Email)
}

func TestActivityForm_SetHour(t *testing.T) {
	f := planner.NewActivityForm(sampleTrip())
	assert.Equal(t, "14", f.SetHour("14"))
	assert.Equal(t, "93", f.SetHour("9a3x7"))
	assert.Equal(t, "", f.SetHour("h"))
	assert.Equal(t, "08", f.SetHour(" 08 "))
	assert.Equal(t, "08", f.Hour())
}

func TestActivityForm_DateBoundedByTrip(t *testing.T) {
	f := planner.NewActivityForm(sampleTrip())
	assert.False(t, f.SelectDay(daterange.NewDay(2024, time.June, 11)))
	assert.False(t, f.SelectDay(daterange.NewDay(2024, time.June, 19)))
	assert.True(t, f.SelectDay(daterange.NewDay(2024, time.June, 18)))
	assert.Equal(t, daterange.NewDay(2024, time.June, 18), f.Date)
}

func TestActivityForm_Request(t *testing.T) {
	f := planner.NewActivityForm(sampleTrip())
	f.Title = "Trilha"
	_, err := f.Request()
	assert.Equal(t, "Preencha todas as informações da atividade.", formMessage(t, err))

	f.SelectDay(daterange.NewDay(2024, time.June, 13))
	f.SetHour("24")
	_, err = f.Request()
	assert.Equal(t, "Informe uma hora entre 0 e 23.", formMessage(t, err))

	f.SetHour("7")
	req, err := f.Request()
	require.NoError(t, err)
	assert.Equal(t, "Trilha", req.Title)
	assert.Equal(t, utc(2024, time.June, 13, 7), req.OccursAt)

	f.Reset()
	assert.Empty(t, f.Title)
	assert.True(t, f.Date.IsZero())
	assert.False(t, f.SelectDay(daterange.NewDay(2024, time.June, 30)))
}

func TestLinkForm(t *testing.T) {
	_, err := planner.LinkForm{URL: "https://example.com"}.Request()
	assert.Equal(t, "Informe um título para o link.", formMessage(t, err))

	_, err = planner.LinkForm{Title: "Hotel", URL: "example.com"}.Request()
	assert.Equal(t, "Informe uma URL válida para o link.", formMessage(t, err))

	req, err := planner.LinkForm{Title: "Hotel", URL: " https://hotel.example.com/reserva "}.Request()
	require.NoError(t, err)
	assert.Equal(t, "https://hotel.example.com/reserva", req.URL)
}

func TestInviteEmail(t *testing.T) {
	got, err := planner.InviteEmail(" Ana@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got)

	_, err = planner.InviteEmail("ana")
	assert.Equal(t, "Informe um e-mail válido.", formMessage(t, err))
}
