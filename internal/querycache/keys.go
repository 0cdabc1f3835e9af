package querycache

import "github.com/google/uuid"

// Query key roots used by the planner.
const (
	TripDetails      = "trip-details"
	TripActivities   = "trip-activities"
	TripParticipants = "trip-participants"
	TripLinks        = "trip-links"
)

// TripDetailsKey is the key of one trip's details.
func TripDetailsKey(id uuid.UUID) Key { return K(TripDetails, id) }

// TripActivitiesKey is the key of one trip's activities.
func TripActivitiesKey(id uuid.UUID) Key { return K(TripActivities, id) }

// TripParticipantsKey is the key of one trip's participants.
func TripParticipantsKey(id uuid.UUID) Key { return K(TripParticipants, id) }

// TripLinksKey is the key of one trip's links.
func TripLinksKey(id uuid.UUID) Key { return K(TripLinks, id) }
