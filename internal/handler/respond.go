package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeErrorBody(w http.ResponseWriter, status int, body api.ErrorResponse) {
	writeJSON(w, status, body)
}

// writeError maps a service error onto the HTTP error contract.
// what names the resource for 404 messages, e.g. "trip".
func writeError(w http.ResponseWriter, r *http.Request, what string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, notFoundBody(what+" not found"))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeConflict, Message: unwrapMessage(err, domain.ErrConflict)},
		})
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, api.ErrorResponse{
			Error: api.ErrorDetail{Code: api.CodeInternal, Message: "internal server error"},
		})
	}
}

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) api.ErrorResponse {
	return requestBody(unwrapMessage(err, domain.ErrValidation))
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (missing or malformed body, bad path parameter).
func requestBody(message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: api.CodeValidation, Message: message}}
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.TripService.Create: validation error: destination is required"
// becomes "destination is required".
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeJSON reads the request body into v. Unknown fields are rejected so
// client typos surface as 422 instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}
