package domain

import "github.com/google/uuid"

// Participant is a person attached to a trip: the owner, who is confirmed
// from the start, or an invited guest who confirms through the invitation
// link. Name is empty until the guest confirms.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        string
	Email       string
	IsConfirmed bool
	IsOwner     bool
}
