package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Florianópolis",
		StartsAt:    time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC),
		IsConfirmed: true,
	}
}

func tripsOnly(svc *mockTripServicer) http.Handler {
	return newHTTPHandler(handler.Services{Trips: svc})
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.NewTrip
	svc := &mockTripServicer{
		create: func(_ context.Context, req domain.NewTrip) (domain.Trip, error) {
			got = req
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"destination":      "Florianópolis",
		"starts_at":        "2024-06-12T00:00:00Z",
		"ends_at":          "2024-06-18T00:00:00Z",
		"emails_to_invite": []string{"bruno@example.com"},
		"owner_name":       "Ana",
		"owner_email":      "ana@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp api.CreateTripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.TripID)

	assert.Equal(t, "Florianópolis", got.Destination)
	assert.True(t, got.StartsAt.Equal(fixture.StartsAt))
	assert.Equal(t, []string{"bruno@example.com"}, got.EmailsToInvite)
	assert.Equal(t, "ana@example.com", got.OwnerEmail)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.NewTrip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: destination must be at least 4 characters", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips", jsonBody(t, map[string]any{"destination": "Rio"}))
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec.Body)
	assert.Equal(t, api.CodeValidation, detail.Code)
	assert.Equal(t, "destination must be at least 4 characters", detail.Message)
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	tripsOnly(&mockTripServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, api.CodeValidation, decodeError(t, rec.Body).Code)
}

func TestCreateTrip_422_UnknownField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/trips", jsonBody(t, map[string]any{"destino": "Recife"}))
	rec := httptest.NewRecorder()
	tripsOnly(&mockTripServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTrip_500_UnexpectedError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.NewTrip) (domain.Trip, error) {
			return domain.Trip{}, errors.New("db exploded")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/trips", jsonBody(t, map[string]any{"destination": "Recife"}))
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec.Body)
	assert.Equal(t, api.CodeInternal, detail.Code)
	assert.NotContains(t, detail.Message, "db exploded")
}

// ---- GET /trips/{tripId} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			require.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	trip := raw["trip"]
	assert.Equal(t, fixture.ID.String(), trip["id"])
	assert.Equal(t, "Florianópolis", trip["destination"])
	assert.Equal(t, "2024-06-12T00:00:00Z", trip["starts_at"])
	assert.Equal(t, "2024-06-18T00:00:00Z", trip["ends_at"])
	assert.Equal(t, true, trip["is_confirmed"])
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	detail := decodeError(t, rec.Body)
	assert.Equal(t, api.CodeNotFound, detail.Code)
	assert.Equal(t, "trip not found", detail.Message)
}

func TestGetTrip_422_InvalidUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	tripsOnly(&mockTripServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body).Message, "tripId")
}

// ---- PUT /trips/{tripId} ---------------------------------------------------

func TestUpdateTrip_204(t *testing.T) {
	id := uuid.New()
	var got domain.Trip
	svc := &mockTripServicer{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			got = trip
			return trip, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"destination": "Recife",
		"starts_at":   "2024-07-01T00:00:00Z",
		"ends_at":     "2024-07-03T00:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPut, "/trips/"+id.String(), body)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Recife", got.Destination)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"destination": "Recife"})
	req := httptest.NewRequest(http.MethodPut, "/trips/"+uuid.New().String(), body)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /trips/{tripId}/confirm -------------------------------------------

func TestConfirmTrip_204(t *testing.T) {
	id := uuid.New()
	called := false
	svc := &mockTripServicer{
		confirm: func(_ context.Context, got uuid.UUID) error {
			called = got == id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+id.String()+"/confirm", nil)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestConfirmTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		confirm: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String()+"/confirm", nil)
	rec := httptest.NewRecorder()
	tripsOnly(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
