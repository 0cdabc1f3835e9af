package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something scheduled to happen at a point in time during a trip.
type Activity struct {
	ID       uuid.UUID
	TripID   uuid.UUID
	Title    string
	OccursAt time.Time
}

// ActivityDay groups the activities of one trip day.
// Date is midnight UTC of that day; Activities is ordered by OccursAt and is
// empty (never nil) for days with nothing planned.
type ActivityDay struct {
	Date       time.Time
	Activities []Activity
}
