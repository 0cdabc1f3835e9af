package planner_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/planner"
	"github.com/pkordes/trip-planner/internal/querycache"
)

// mockAPI is a hand-written test double. Each method is a function field;
// calling an unset one panics.
type mockAPI struct {
	createTrip         func(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error)
	getTripDetails     func(ctx context.Context, tripID uuid.UUID) (api.Trip, error)
	updateTrip         func(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error
	confirmTrip        func(ctx context.Context, tripID uuid.UUID) error
	confirmParticipant func(ctx context.Context, participantID uuid.UUID, req api.ConfirmParticipantRequest) error
	listParticipants   func(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error)
	inviteParticipant  func(ctx context.Context, tripID uuid.UUID, email string) (uuid.UUID, error)
	createActivity     func(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error)
	listActivities     func(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error)
	createLink         func(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error)
	listLinks          func(ctx context.Context, tripID uuid.UUID) ([]api.Link, error)
}

func (m *mockAPI) CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error) {
	return m.createTrip(ctx, req)
}
func (m *mockAPI) GetTripDetails(ctx context.Context, tripID uuid.UUID) (api.Trip, error) {
	return m.getTripDetails(ctx, tripID)
}
func (m *mockAPI) UpdateTrip(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error {
	return m.updateTrip(ctx, tripID, req)
}
func (m *mockAPI) ConfirmTrip(ctx context.Context, tripID uuid.UUID) error {
	return m.confirmTrip(ctx, tripID)
}
func (m *mockAPI) ConfirmParticipant(ctx context.Context, participantID uuid.UUID, req api.ConfirmParticipantRequest) error {
	return m.confirmParticipant(ctx, participantID, req)
}
func (m *mockAPI) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error) {
	return m.listParticipants(ctx, tripID)
}
func (m *mockAPI) InviteParticipant(ctx context.Context, tripID uuid.UUID, email string) (uuid.UUID, error) {
	return m.inviteParticipant(ctx, tripID, email)
}
func (m *mockAPI) CreateActivity(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error) {
	return m.createActivity(ctx, tripID, req)
}
func (m *mockAPI) ListActivities(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error) {
	return m.listActivities(ctx, tripID)
}
func (m *mockAPI) CreateLink(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error) {
	return m.createLink(ctx, tripID, req)
}
func (m *mockAPI) ListLinks(ctx context.Context, tripID uuid.UUID) ([]api.Link, error) {
	return m.listLinks(ctx, tripID)
}

// memStore keeps the current trip id in memory.
type memStore struct {
	id      uuid.UUID
	ok      bool
	saveErr error
}

func (s *memStore) Save(_ context.Context, id uuid.UUID) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.id, s.ok = id, true
	return nil
}
func (s *memStore) Get(context.Context) (uuid.UUID, bool, error) { return s.id, s.ok, nil }
func (s *memStore) Remove(context.Context) error {
	s.id, s.ok = uuid.Nil, false
	return nil
}

func newPlanner(m *mockAPI, store *memStore) *planner.Planner {
	return planner.New(m, querycache.New(time.Minute), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func utc(y int, mo time.Month, d, h int) time.Time {
	return time.Date(y, mo, d, h, 0, 0, 0, time.UTC)
}

func sampleTrip() api.Trip {
	return api.Trip{
		ID:          uuid.New(),
		Destination: "Florianópolis",
		StartsAt:    utc(2024, time.June, 12, 0),
		EndsAt:      utc(2024, time.June, 18, 0),
		IsConfirmed: true,
	}
}
