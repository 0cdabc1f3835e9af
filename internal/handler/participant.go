package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// ListParticipants handles GET /trips/{tripId}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	participants, err := s.svc.Participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}

	data := make([]api.Participant, len(participants))
	for i, p := range participants {
		data[i] = participantToResponse(p)
	}
	writeJSON(w, http.StatusOK, api.ParticipantsResponse{Participants: data})
}

// InviteParticipant handles POST /trips/{tripId}/invites.
func (s *Server) InviteParticipant(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var body api.InviteRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	p, err := s.svc.Participants.Invite(r.Context(), tripID, body.Email)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, api.InviteResponse{ParticipantID: p.ID})
}

// ConfirmParticipant handles PATCH /participants/{participantId}/confirm.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var body api.ConfirmParticipantRequest
	if err := decodeJSON(r, &body); err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if err := s.svc.Participants.Confirm(r.Context(), id, body.Name, body.Email); err != nil {
		writeError(w, r, "participant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// participantToResponse maps an unconfirmed guest's empty name to JSON null.
func participantToResponse(p domain.Participant) api.Participant {
	resp := api.Participant{
		ID:          p.ID,
		Email:       p.Email,
		IsConfirmed: p.IsConfirmed,
	}
	if p.Name != "" {
		name := p.Name
		resp.Name = &name
	}
	return resp
}
