// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (repo, service, handler,
// client, planner) and depends only on uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: participants, activities and links all
// belong to a trip. StartsAt and EndsAt bound the days activities may be
// scheduled on.
type Trip struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	// IsConfirmed is set once the owner follows the confirmation link.
	// Invitations are only e-mailed to guests after that.
	IsConfirmed bool
	CreatedAt   time.Time
}

// NewTrip carries everything needed to create a trip in one go: the trip
// itself, its owner, and the guests to invite.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}
