package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body api.CreateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.svc.Trips.Create(r.Context(), domain.NewTrip{
		Destination:    body.Destination,
		StartsAt:       body.StartsAt,
		EndsAt:         body.EndsAt,
		OwnerName:      body.OwnerName,
		OwnerEmail:     body.OwnerEmail,
		EmailsToInvite: body.EmailsToInvite,
	})
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CreateTripResponse{TripID: created.ID})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	trip, err := s.svc.Trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TripDetailsResponse{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var body api.UpdateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	_, err = s.svc.Trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: body.Destination,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	})
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmTrip handles GET /trips/{tripId}/confirm, the link e-mailed to the
// trip owner. It is a GET so that following the link from a mail client works.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	if err := s.svc.Trips.Confirm(r.Context(), id); err != nil {
		writeError(w, r, "trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tripToResponse(t domain.Trip) api.Trip {
	return api.Trip{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt.UTC(),
		EndsAt:      t.EndsAt.UTC(),
		IsConfirmed: t.IsConfirmed,
	}
}
