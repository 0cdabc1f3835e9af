package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/trip-planner/internal/api"
)

// writeJSONError writes the API error envelope for requests rejected before
// they reach a handler.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}
