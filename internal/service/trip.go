// Package service contains the business logic for the planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// Services depend on repo interfaces and hold no SQL.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/daterange"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/mailer"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/validate"
)

// minDestinationLength is the shortest destination accepted, counted in
// characters after trimming.
const minDestinationLength = 4

// maxTripDays is the longest trip accepted, first and last day included.
const maxTripDays = 366

// TripService implements business logic for Trip operations.
// It owns the confirmation e-mail flow: the owner confirms the trip, and only
// then are the guests invited.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mail         mailer.Mailer
	urls         URLs
	log          *slog.Logger
}

// NewTripService constructs a TripService backed by the provided repos and mailer.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mail mailer.Mailer, urls URLs, log *slog.Logger) *TripService {
	return &TripService{trips: trips, participants: participants, mail: mail, urls: urls, log: log}
}

// Create validates the request, stores the trip with its owner (already
// confirmed) and invited guests, then e-mails the owner a confirmation link.
// Returns domain.ErrValidation if input violates business rules.
//
// A failed confirmation e-mail is logged but does not fail the request: the
// trip is already stored and the client moves on to it.
func (s *TripService) Create(ctx context.Context, req domain.NewTrip) (domain.Trip, error) {
	trip := domain.Trip{
		Destination: strings.TrimSpace(req.Destination),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	ownerEmail := normalizeEmail(req.OwnerEmail)
	if strings.TrimSpace(req.OwnerName) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: owner_name is required", domain.ErrValidation)
	}
	if !validate.Email(ownerEmail) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: owner_email is invalid", domain.ErrValidation)
	}

	participants := []domain.Participant{{
		Name:        strings.TrimSpace(req.OwnerName),
		Email:       ownerEmail,
		IsConfirmed: true,
		IsOwner:     true,
	}}
	seen := map[string]bool{ownerEmail: true}
	for _, raw := range req.EmailsToInvite {
		email := normalizeEmail(raw)
		if !validate.Email(email) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: invalid e-mail to invite: %q", domain.ErrValidation, raw)
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		participants = append(participants, domain.Participant{Email: email})
	}

	created, _, err := s.trips.Create(ctx, trip, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	data := tripEmail(created, s.urls.TripConfirmation(created.ID))
	data.OwnerName = participants[0].Name
	if err := s.mail.Send(ctx, ownerEmail, mailer.TripConfirmation, data); err != nil {
		s.log.ErrorContext(ctx, "send trip confirmation", "trip_id", created.ID, "error", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update validates and persists a new destination and date range.
// Activities scheduled outside the new range are kept but no longer listed.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Destination = strings.TrimSpace(trip.Destination)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm marks the trip confirmed and e-mails an invitation to every guest
// who has not confirmed yet. Confirming an already confirmed trip sends
// nothing. Individual delivery failures are logged and skipped.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return nil
	}
	if err := s.trips.Confirm(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	participants, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	for _, p := range participants {
		if p.IsOwner || p.IsConfirmed {
			continue
		}
		data := tripEmail(trip, s.urls.Invitation(trip.ID, p.ID))
		if err := s.mail.Send(ctx, p.Email, mailer.TripInvitation, data); err != nil {
			s.log.ErrorContext(ctx, "send trip invitation", "trip_id", trip.ID, "participant_id", p.ID, "error", err)
		}
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must have at least minDestinationLength characters.
//   - Both dates are required.
//   - EndsAt must not be before StartsAt; a one-day trip is fine.
//   - The trip spans at most maxTripDays days.
func validateTrip(trip domain.Trip) error {
	if trip.Destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(trip.Destination) < minDestinationLength {
		return fmt.Errorf("%w: destination must be at least %d characters", domain.ErrValidation, minDestinationLength)
	}
	if trip.StartsAt.IsZero() || trip.EndsAt.IsZero() {
		return fmt.Errorf("%w: starts_at and ends_at are required", domain.ErrValidation)
	}
	if trip.EndsAt.Before(trip.StartsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrValidation)
	}
	span := tripRange(trip)
	if span.End.After(span.Start.AddDays(maxTripDays - 1)) {
		return fmt.Errorf("%w: a trip may span at most %d days", domain.ErrValidation, maxTripDays)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tripRange is the trip's span as calendar days (UTC).
func tripRange(trip domain.Trip) daterange.Range {
	return daterange.Range{
		Start: daterange.DayOf(trip.StartsAt.UTC()),
		End:   daterange.DayOf(trip.EndsAt.UTC()),
	}
}

func tripEmail(trip domain.Trip, link string) mailer.TripEmail {
	return mailer.TripEmail{
		Destination:     trip.Destination,
		When:            tripRange(trip).Label(),
		ConfirmationURL: link,
	}
}

// URLs builds the absolute links placed in e-mails.
type URLs struct {
	// API is the public base URL of this server, e.g. "https://api.planner.example".
	API string
	// App is the base URL the mobile app opens deep links from.
	App string
}

// TripConfirmation is the link the owner follows to confirm a trip.
func (u URLs) TripConfirmation(tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s/confirm", strings.TrimRight(u.API, "/"), tripID)
}

// Invitation is the deep link a guest follows to confirm attendance.
func (u URLs) Invitation(tripID, participantID uuid.UUID) string {
	return fmt.Sprintf("%s/trip/%s?participant=%s", strings.TrimRight(u.App, "/"), tripID, participantID)
}
