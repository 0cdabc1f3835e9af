package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/mailer"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/validate"
)

// ParticipantService implements business logic for trip participants:
// listing, inviting more guests, and guests confirming their attendance.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mail         mailer.Mailer
	urls         URLs
	log          *slog.Logger
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo, mail mailer.Mailer, urls URLs, log *slog.Logger) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants, mail: mail, urls: urls, log: log}
}

// ListByTripID returns the participants of a trip.
// Returns domain.ErrNotFound if the trip does not exist, and always a non-nil
// slice otherwise.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// Invite adds a guest to the trip. Inviting an address already on the trip
// returns the existing participant. When the owner has already confirmed the
// trip the invitation e-mail goes out right away; otherwise it is sent when
// the trip is confirmed.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	email = normalizeEmail(email)
	if !validate.Email(email) {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w: email is invalid", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	p, err := s.participants.Create(ctx, domain.Participant{TripID: tripID, Email: email})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	if trip.IsConfirmed && !p.IsConfirmed {
		data := tripEmail(trip, s.urls.Invitation(trip.ID, p.ID))
		if err := s.mail.Send(ctx, p.Email, mailer.TripInvitation, data); err != nil {
			s.log.ErrorContext(ctx, "send trip invitation", "trip_id", trip.ID, "participant_id", p.ID, "error", err)
		}
	}
	return p, nil
}

// Confirm records a guest's name and confirms their attendance.
// Returns domain.ErrValidation for a blank name or malformed e-mail,
// domain.ErrConflict when the e-mail is not the one the invitation was sent
// to, and domain.ErrNotFound for an unknown participant. Confirming twice is
// a no-op.
func (s *ParticipantService) Confirm(ctx context.Context, participantID uuid.UUID, name, email string) error {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return fmt.Errorf("service.ParticipantService.Confirm: %w: name is required", domain.ErrValidation)
	}
	if !validate.Email(email) {
		return fmt.Errorf("service.ParticipantService.Confirm: %w: email is invalid", domain.ErrValidation)
	}

	p, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if p.Email != email {
		return fmt.Errorf("service.ParticipantService.Confirm: %w: email does not match the invitation", domain.ErrConflict)
	}
	if p.IsConfirmed {
		return nil
	}

	if _, err := s.participants.Confirm(ctx, participantID, name); err != nil {
		return fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	return nil
}
