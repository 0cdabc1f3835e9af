package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// Test doubles for the handler.*Servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create  func(ctx context.Context, req domain.NewTrip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, req domain.NewTrip) (domain.Trip, error) {
	return m.create(ctx, req)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.confirm(ctx, id)
}

type mockParticipantServicer struct {
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	invite       func(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
	confirm      func(ctx context.Context, participantID uuid.UUID, name, email string) error
}

func (m *mockParticipantServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantServicer) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	return m.invite(ctx, tripID, email)
}
func (m *mockParticipantServicer) Confirm(ctx context.Context, participantID uuid.UUID, name, email string) error {
	return m.confirm(ctx, participantID, name, email)
}

type mockActivityServicer struct {
	create    func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByDay func(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	return m.listByDay(ctx, tripID)
}

type mockLinkServicer struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkServicer) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) (domain.TripExport, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) (domain.TripExport, error) {
	return m.export(ctx, tripID)
}

// compile-time checks: the doubles must satisfy the handler interfaces.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.ParticipantServicer = (*mockParticipantServicer)(nil)
	_ handler.ActivityServicer    = (*mockActivityServicer)(nil)
	_ handler.LinkServicer        = (*mockLinkServicer)(nil)
	_ handler.ExportServicer      = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router,
// the same way main.go does in production minus the middleware.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) api.ErrorDetail {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}
