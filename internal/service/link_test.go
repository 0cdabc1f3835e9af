package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestLinkService_Create_OK(t *testing.T) {
	trip := sampleTrip(true)
	svc := service.NewLinkService(tripOn(trip), &mockLinkRepo{
		create: func(_ context.Context, l domain.Link) (domain.Link, error) {
			l.ID = uuid.New()
			return l, nil
		},
	})

	got, err := svc.Create(context.Background(), domain.Link{TripID: trip.ID, Title: "Reserva AirBnB", URL: " https://airbnb.com/rooms/1 "})

	require.NoError(t, err)
	assert.Equal(t, "https://airbnb.com/rooms/1", got.URL)
}

func TestLinkService_Create_Validation(t *testing.T) {
	trip := sampleTrip(true)
	svc := service.NewLinkService(tripOn(trip), &mockLinkRepo{})

	tests := []domain.Link{
		{TripID: trip.ID, Title: "", URL: "https://example.com"},
		{TripID: trip.ID, Title: "Mapa", URL: "example.com"},
		{TripID: trip.ID, Title: "Mapa", URL: "ftp://example.com/file"},
	}
	for _, l := range tests {
		_, err := svc.Create(context.Background(), l)
		assert.ErrorIs(t, err, domain.ErrValidation, l.URL)
	}
}

func TestLinkService_Create_TripNotFound(t *testing.T) {
	svc := service.NewLinkService(missingTrip(), &mockLinkRepo{})

	_, err := svc.Create(context.Background(), domain.Link{TripID: uuid.New(), Title: "Mapa", URL: "https://maps.example"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinkService_ListByTripID_EmptyNotNil(t *testing.T) {
	trip := sampleTrip(true)
	svc := service.NewLinkService(tripOn(trip), &mockLinkRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Link, error) { return nil, nil },
	})

	got, err := svc.ListByTripID(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
