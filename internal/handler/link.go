package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// CreateLink handles POST /trips/{tripId}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var body api.CreateLinkRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.svc.Links.Create(r.Context(), domain.Link{TripID: tripID, Title: body.Title, URL: body.URL})
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CreateLinkResponse{LinkID: created.ID})
}

// ListLinks handles GET /trips/{tripId}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	links, err := s.svc.Links.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}

	data := make([]api.Link, len(links))
	for i, l := range links {
		data[i] = api.Link{ID: l.ID, Title: l.Title, URL: l.URL}
	}
	writeJSON(w, http.StatusOK, api.LinksResponse{Links: data})
}
