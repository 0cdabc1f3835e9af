package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var body api.CreateActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.svc.Activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    body.Title,
		OccursAt: body.OccursAt,
	})
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CreateActivityResponse{ActivityID: created.ID})
}

// ListActivities handles GET /trips/{tripId}/activities.
// The response has one entry per trip day, including days with nothing planned.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	days, err := s.svc.Activities.ListByDay(r.Context(), tripID)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}

	data := make([]api.ActivityDay, len(days))
	for i, d := range days {
		acts := make([]api.Activity, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = api.Activity{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt.UTC()}
		}
		data[i] = api.ActivityDay{Date: openapi_types.Date{Time: d.Date}, Activities: acts}
	}
	writeJSON(w, http.StatusOK, api.ActivitiesResponse{Activities: data})
}
