package domain

import "github.com/google/uuid"

// Link is an important URL saved for a trip (booking, reservation, map, ...).
type Link struct {
	ID     uuid.UUID
	TripID uuid.UUID
	Title  string
	URL    string
}
