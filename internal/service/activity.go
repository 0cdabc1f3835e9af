package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/daterange"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the trips repo because an activity must fall within its trip.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity against its parent trip, then persists it.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrValidation if the title is blank or the activity's day lies
// outside the trip.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, a.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: title is required", domain.ErrValidation)
	}
	if a.OccursAt.IsZero() {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: occurs_at is required", domain.ErrValidation)
	}

	span := tripRange(trip)
	bounds := daterange.Bounds{Min: span.Start, Max: span.End}
	if !bounds.Allows(daterange.DayOf(a.OccursAt.UTC())) {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: occurs_at must be between %s and %s",
			domain.ErrValidation, span.Start, span.End)
	}

	created, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByDay returns one ActivityDay per day of the trip, first to last day
// inclusive, each holding that day's activities in time order. Days without
// activities are included with an empty slice so the client can render
// "nothing planned" for them.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}

	byDay := make(map[daterange.Day][]domain.Activity)
	for _, a := range activities {
		d := daterange.DayOf(a.OccursAt.UTC())
		byDay[d] = append(byDay[d], a)
	}

	days := tripRange(trip).Days()
	out := make([]domain.ActivityDay, 0, len(days))
	for _, d := range days {
		acts := byDay[d]
		if acts == nil {
			acts = []domain.Activity{}
		}
		out = append(out, domain.ActivityDay{Date: d.Time(), Activities: acts})
	}
	return out, nil
}
