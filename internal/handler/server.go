// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server; Routes mounts them on a chi router.
// Methods are split into resource files (trip.go, participant.go, etc.) but
// share the same Server struct so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, req domain.NewTrip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) error
}

// ParticipantServicer defines the participant operations.
type ParticipantServicer interface {
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
	Confirm(ctx context.Context, participantID uuid.UUID, name, email string) error
}

// ActivityServicer defines the activity operations.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
}

// LinkServicer defines the link operations.
type LinkServicer interface {
	Create(ctx context.Context, l domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// ExportServicer gathers a trip for export.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) (domain.TripExport, error)
}

// Services groups the dependencies of Server. A nil field leaves the
// corresponding routes unmounted, which keeps single-resource tests small.
type Services struct {
	Trips        TripServicer
	Participants ParticipantServicer
	Activities   ActivityServicer
	Links        LinkServicer
	Export       ExportServicer
}

// Server serves every API endpoint.
type Server struct {
	svc Services
	// now stamps exported calendars; replaced in tests.
	now func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{svc: svc, now: time.Now}
}

// Routes returns a chi router with every endpoint registered.
// Middleware is applied by the caller (cmd/api) so tests exercise the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	if s.svc.Trips != nil {
		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{tripId}", s.GetTrip)
		r.Put("/trips/{tripId}", s.UpdateTrip)
		r.Get("/trips/{tripId}/confirm", s.ConfirmTrip)
	}
	if s.svc.Participants != nil {
		r.Get("/trips/{tripId}/participants", s.ListParticipants)
		r.Post("/trips/{tripId}/invites", s.InviteParticipant)
		r.Patch("/participants/{participantId}/confirm", s.ConfirmParticipant)
	}
	if s.svc.Activities != nil {
		r.Post("/trips/{tripId}/activities", s.CreateActivity)
		r.Get("/trips/{tripId}/activities", s.ListActivities)
	}
	if s.svc.Links != nil {
		r.Post("/trips/{tripId}/links", s.CreateLink)
		r.Get("/trips/{tripId}/links", s.ListLinks)
	}
	if s.svc.Export != nil {
		r.Get("/trips/{tripId}/export", s.ExportTrip)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	return r
}
