package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/validate"
)

// LinkService implements business logic for trip Links.
type LinkService struct {
	trips repo.TripRepo
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService backed by the provided repos.
func NewLinkService(trips repo.TripRepo, links repo.LinkRepo) *LinkService {
	return &LinkService{trips: trips, links: links}
}

// Create validates the link, verifies the parent trip exists, then persists.
func (s *LinkService) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	l.Title = strings.TrimSpace(l.Title)
	l.URL = strings.TrimSpace(l.URL)
	if l.Title == "" {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w: title is required", domain.ErrValidation)
	}
	if !validate.URL(l.URL) {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w: url must be an http(s) URL", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, l.TripID); err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}

	created, err := s.links.Create(ctx, l)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}
	return created, nil
}

// ListByTripID returns the links of a trip; never nil.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *LinkService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}
