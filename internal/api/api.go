// Package api holds the JSON wire types of the planner HTTP API.
// The server handlers encode them and the Go client decodes them, so both
// sides agree on field names by construction. spec/openapi.yaml documents
// the same shapes.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error codes used in ErrorDetail.Code.
const (
	CodeNotFound   = "not_found"
	CodeValidation = "validation_error"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Destination    string    `json:"destination"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	EmailsToInvite []string  `json:"emails_to_invite"`
	OwnerName      string    `json:"owner_name"`
	OwnerEmail     string    `json:"owner_email"`
}

// CreateTripResponse is returned with 201 from POST /trips.
type CreateTripResponse struct {
	TripID openapi_types.UUID `json:"tripId"`
}

// Trip is the public view of a trip.
type Trip struct {
	ID          openapi_types.UUID `json:"id"`
	Destination string             `json:"destination"`
	StartsAt    time.Time          `json:"starts_at"`
	EndsAt      time.Time          `json:"ends_at"`
	IsConfirmed bool               `json:"is_confirmed"`
}

// TripDetailsResponse is the body of GET /trips/{tripId}.
type TripDetailsResponse struct {
	Trip Trip `json:"trip"`
}

// UpdateTripRequest is the body of PUT /trips/{tripId}.
type UpdateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// Participant is one person on a trip. Name is null until the guest confirms.
type Participant struct {
	ID          openapi_types.UUID `json:"id"`
	Name        *string            `json:"name"`
	Email       string             `json:"email"`
	IsConfirmed bool               `json:"is_confirmed"`
}

// ParticipantsResponse is the body of GET /trips/{tripId}/participants.
type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// InviteRequest is the body of POST /trips/{tripId}/invites.
type InviteRequest struct {
	Email string `json:"email"`
}

// InviteResponse is returned with 201 from POST /trips/{tripId}/invites.
type InviteResponse struct {
	ParticipantID openapi_types.UUID `json:"participantId"`
}

// ConfirmParticipantRequest is the body of PATCH /participants/{participantId}/confirm.
type ConfirmParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateActivityRequest is the body of POST /trips/{tripId}/activities.
type CreateActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// CreateActivityResponse is returned with 201 from POST /trips/{tripId}/activities.
type CreateActivityResponse struct {
	ActivityID openapi_types.UUID `json:"activityId"`
}

// Activity is one scheduled item.
type Activity struct {
	ID       openapi_types.UUID `json:"id"`
	Title    string             `json:"title"`
	OccursAt time.Time          `json:"occurs_at"`
}

// ActivityDay groups the activities of one trip day.
type ActivityDay struct {
	Date       openapi_types.Date `json:"date"`
	Activities []Activity         `json:"activities"`
}

// ActivitiesResponse is the body of GET /trips/{tripId}/activities.
type ActivitiesResponse struct {
	Activities []ActivityDay `json:"activities"`
}

// CreateLinkRequest is the body of POST /trips/{tripId}/links.
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CreateLinkResponse is returned with 201 from POST /trips/{tripId}/links.
type CreateLinkResponse struct {
	LinkID openapi_types.UUID `json:"linkId"`
}

// Link is an important URL saved for a trip.
type Link struct {
	ID    openapi_types.UUID `json:"id"`
	Title string             `json:"title"`
	URL   string             `json:"url"`
}

// LinksResponse is the body of GET /trips/{tripId}/links.
type LinksResponse struct {
	Links []Link `json:"links"`
}

// Export formats accepted by GET /trips/{tripId}/export.
const (
	FormatICS = "ics"
	FormatCSV = "csv"
)
