package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/mailer"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which flags an unexpected
// repo call loudly.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	return m.create(ctx, trip, participants)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.confirm(ctx, id)
}

type mockParticipantRepo struct {
	create       func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	confirm      func(ctx context.Context, id uuid.UUID, name string) (domain.Participant, error)
}

func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID, name string) (domain.Participant, error) {
	return m.confirm(ctx, id, name)
}

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

type mockLinkRepo struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

// compile-time checks: the doubles must satisfy the repo interfaces.
var (
	_ repo.TripRepo        = (*mockTripRepo)(nil)
	_ repo.ParticipantRepo = (*mockParticipantRepo)(nil)
	_ repo.ActivityRepo    = (*mockActivityRepo)(nil)
	_ repo.LinkRepo        = (*mockLinkRepo)(nil)
)

// sentMail is one recorded Mailer.Send call.
type sentMail struct {
	To       string
	Template string
	Data     mailer.TripEmail
}

// recordingMailer captures every message instead of delivering it.
// A non-nil err is returned from every Send after recording the call.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, _ := data.(mailer.TripEmail)
	m.sent = append(m.sent, sentMail{To: recipient, Template: templateFile, Data: email})
	return m.err
}

var _ mailer.Mailer = (*recordingMailer)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testURLs = service.URLs{API: "https://api.planner.test/", App: "https://app.planner.test"}

// tripOn returns a repo that knows exactly one trip.
func tripOn(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return trip, nil
		},
	}
}

func missingTrip() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
}
