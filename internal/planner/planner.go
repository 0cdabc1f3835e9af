// Package planner is the client-side layer of the trip planner. It holds the
// queries and mutations the app screens run against the API, the form state
// machines that build their requests, and the text the screens display.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/querycache"
)

// API is the subset of *client.Client the planner calls.
type API interface {
	CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error)
	GetTripDetails(ctx context.Context, tripID uuid.UUID) (api.Trip, error)
	UpdateTrip(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error
	ConfirmTrip(ctx context.Context, tripID uuid.UUID) error
	ConfirmParticipant(ctx context.Context, participantID uuid.UUID, req api.ConfirmParticipantRequest) error
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error)
	InviteParticipant(ctx context.Context, tripID uuid.UUID, email string) (uuid.UUID, error)
	CreateActivity(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error)
	ListActivities(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error)
	CreateLink(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error)
	ListLinks(ctx context.Context, tripID uuid.UUID) ([]api.Link, error)
}

// TripStore remembers which trip this device is looking at.
// *tripstore.Store satisfies it.
type TripStore interface {
	Save(ctx context.Context, tripID uuid.UUID) error
	Get(ctx context.Context) (uuid.UUID, bool, error)
	Remove(ctx context.Context) error
}

// Planner runs the app's queries through the cache and its mutations against
// the API, keeping the cache consistent afterwards.
type Planner struct {
	api   API
	cache *querycache.Cache
	store TripStore
	log   *slog.Logger
}

// New returns a Planner.
func New(client API, cache *querycache.Cache, store TripStore, log *slog.Logger) *Planner {
	return &Planner{api: client, cache: cache, store: store, log: log}
}

// TripDetails returns the trip, from cache while fresh.
func (p *Planner) TripDetails(ctx context.Context, tripID uuid.UUID) (api.Trip, error) {
	trip, err := querycache.Query(ctx, p.cache, querycache.TripDetailsKey(tripID), func(ctx context.Context) (api.Trip, error) {
		return p.api.GetTripDetails(ctx, tripID)
	})
	if err != nil {
		return api.Trip{}, fmt.Errorf("planner.Planner.TripDetails: %w", err)
	}
	return trip, nil
}

// Participants returns the trip's participants, from cache while fresh.
func (p *Planner) Participants(ctx context.Context, tripID uuid.UUID) ([]api.Participant, error) {
	ps, err := querycache.Query(ctx, p.cache, querycache.TripParticipantsKey(tripID), func(ctx context.Context) ([]api.Participant, error) {
		return p.api.ListParticipants(ctx, tripID)
	})
	if err != nil {
		return nil, fmt.Errorf("planner.Planner.Participants: %w", err)
	}
	return ps, nil
}

// Activities returns the trip's activities by day, from cache while fresh.
func (p *Planner) Activities(ctx context.Context, tripID uuid.UUID) ([]api.ActivityDay, error) {
	days, err := querycache.Query(ctx, p.cache, querycache.TripActivitiesKey(tripID), func(ctx context.Context) ([]api.ActivityDay, error) {
		return p.api.ListActivities(ctx, tripID)
	})
	if err != nil {
		return nil, fmt.Errorf("planner.Planner.Activities: %w", err)
	}
	return days, nil
}

// Links returns the trip's links, from cache while fresh.
func (p *Planner) Links(ctx context.Context, tripID uuid.UUID) ([]api.Link, error) {
	links, err := querycache.Query(ctx, p.cache, querycache.TripLinksKey(tripID), func(ctx context.Context) ([]api.Link, error) {
		return p.api.ListLinks(ctx, tripID)
	})
	if err != nil {
		return nil, fmt.Errorf("planner.Planner.Links: %w", err)
	}
	return links, nil
}

// CreateTrip creates the trip and makes it the device's current trip.
func (p *Planner) CreateTrip(ctx context.Context, req api.CreateTripRequest) (uuid.UUID, error) {
	id, err := p.api.CreateTrip(ctx, req)
	if err != nil {
		return uuid.Nil, p.failed(ctx, "createTrip", err)
	}
	if err := p.store.Save(ctx, id); err != nil {
		return uuid.Nil, p.failed(ctx, "createTrip", err)
	}
	return id, nil
}

// UpdateTrip saves the new destination and dates and patches the cached
// trip details in place.
func (p *Planner) UpdateTrip(ctx context.Context, tripID uuid.UUID, req api.UpdateTripRequest) error {
	if err := p.api.UpdateTrip(ctx, tripID, req); err != nil {
		return p.failed(ctx, "updateTrip", err)
	}
	querycache.UpdateAll(p.cache, querycache.TripDetailsKey(tripID), func(t api.Trip) api.Trip {
		t.Destination = req.Destination
		t.StartsAt = req.StartsAt
		t.EndsAt = req.EndsAt
		return t
	})
	return nil
}

// ConfirmTrip follows the owner's confirmation link and refreshes the trip.
func (p *Planner) ConfirmTrip(ctx context.Context, tripID uuid.UUID) error {
	if err := p.api.ConfirmTrip(ctx, tripID); err != nil {
		return p.failed(ctx, "confirmTrip", err)
	}
	p.cache.Invalidate(querycache.TripDetailsKey(tripID))
	p.cache.Invalidate(querycache.TripParticipantsKey(tripID))
	return nil
}

// ConfirmAttendance confirms the guest, marks them confirmed in every cached
// participant list, and makes tripID the device's current trip.
func (p *Planner) ConfirmAttendance(ctx context.Context, tripID, participantID uuid.UUID, req api.ConfirmParticipantRequest) error {
	if err := p.api.ConfirmParticipant(ctx, participantID, req); err != nil {
		return p.failed(ctx, "confirmAttendance", err)
	}
	name := req.Name
	querycache.UpdateAll(p.cache, querycache.K(querycache.TripParticipants), func(ps []api.Participant) []api.Participant {
		out := make([]api.Participant, len(ps))
		for i, pt := range ps {
			if pt.ID == participantID {
				pt.IsConfirmed = true
				pt.Name = &name
			}
			out[i] = pt
		}
		return out
	})
	if err := p.store.Save(ctx, tripID); err != nil {
		return p.failed(ctx, "confirmAttendance", err)
	}
	return nil
}

// Invite adds a guest to the trip.
func (p *Planner) Invite(ctx context.Context, tripID uuid.UUID, email string) (uuid.UUID, error) {
	id, err := p.api.InviteParticipant(ctx, tripID, email)
	if err != nil {
		return uuid.Nil, p.failed(ctx, "invite", err)
	}
	p.cache.Invalidate(querycache.TripParticipantsKey(tripID))
	return id, nil
}

// CreateActivity schedules an activity.
func (p *Planner) CreateActivity(ctx context.Context, tripID uuid.UUID, req api.CreateActivityRequest) (uuid.UUID, error) {
	id, err := p.api.CreateActivity(ctx, tripID, req)
	if err != nil {
		return uuid.Nil, p.failed(ctx, "createActivity", err)
	}
	p.cache.Invalidate(querycache.TripActivitiesKey(tripID))
	return id, nil
}

// CreateLink saves a link.
func (p *Planner) CreateLink(ctx context.Context, tripID uuid.UUID, req api.CreateLinkRequest) (uuid.UUID, error) {
	id, err := p.api.CreateLink(ctx, tripID, req)
	if err != nil {
		return uuid.Nil, p.failed(ctx, "createLink", err)
	}
	p.cache.Invalidate(querycache.TripLinksKey(tripID))
	return id, nil
}

// CurrentTrip loads the trip stored on this device. ok is false when no trip
// is stored or the stored trip no longer exists; in the latter case the
// stored id is forgotten.
func (p *Planner) CurrentTrip(ctx context.Context) (trip api.Trip, ok bool, err error) {
	id, ok, err := p.store.Get(ctx)
	if err != nil {
		return api.Trip{}, false, fmt.Errorf("planner.Planner.CurrentTrip: %w", err)
	}
	if !ok {
		return api.Trip{}, false, nil
	}
	trip, err = p.TripDetails(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		p.log.InfoContext(ctx, "stored trip is gone", "trip_id", id)
		if rerr := p.store.Remove(ctx); rerr != nil {
			return api.Trip{}, false, fmt.Errorf("planner.Planner.CurrentTrip: %w", rerr)
		}
		return api.Trip{}, false, nil
	}
	if err != nil {
		return api.Trip{}, false, fmt.Errorf("planner.Planner.CurrentTrip: %w", err)
	}
	return trip, true, nil
}

// ForgetTrip removes the current trip from this device. The trip itself is
// untouched on the server.
func (p *Planner) ForgetTrip(ctx context.Context) error {
	id, ok, err := p.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("planner.Planner.ForgetTrip: %w", err)
	}
	if err := p.store.Remove(ctx); err != nil {
		return fmt.Errorf("planner.Planner.ForgetTrip: %w", err)
	}
	if ok {
		p.cache.Remove(querycache.TripDetailsKey(id))
	}
	return nil
}

func (p *Planner) failed(ctx context.Context, op string, err error) error {
	p.log.WarnContext(ctx, "mutation failed", "op", op, "error", err)
	return fmt.Errorf("planner.Planner.%s: %w", op, err)
}
