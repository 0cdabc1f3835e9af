package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles everything known about one trip for export.
type ExportService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	activities   repo.ActivityRepo
	links        repo.LinkRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, participants repo.ParticipantRepo, activities repo.ActivityRepo, links repo.LinkRepo) *ExportService {
	return &ExportService{trips: trips, participants: participants, activities: activities, links: links}
}

// Export returns the trip with its participants, activities (time order) and links.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) (domain.TripExport, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, fmt.Errorf("service.ExportService.Export: participants: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, fmt.Errorf("service.ExportService.Export: activities: %w", err)
	}
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripExport{}, fmt.Errorf("service.ExportService.Export: links: %w", err)
	}
	return domain.TripExport{Trip: trip, Participants: participants, Activities: activities, Links: links}, nil
}
