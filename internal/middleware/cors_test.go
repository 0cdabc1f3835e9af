package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/middleware"
)

// expoOrigin is the Expo dev server, the default CORS_ORIGINS entry.
const expoOrigin = "http://localhost:8081"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler_Preflight(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		path       string
		wantAllow  bool
		wantMethod string
	}{
		{name: "create trip", origin: expoOrigin, method: http.MethodPost, path: "/trips", wantAllow: true, wantMethod: http.MethodPost},
		{name: "update trip", origin: expoOrigin, method: http.MethodPut, path: "/trips/1", wantAllow: true, wantMethod: http.MethodPut},
		{name: "confirm participant", origin: expoOrigin, method: http.MethodPatch, path: "/participants/1/confirm", wantAllow: true, wantMethod: http.MethodPatch},
		{name: "delete is not part of the API", origin: expoOrigin, method: http.MethodDelete, path: "/trips/1"},
		{name: "unknown origin", origin: "https://evil.example.com", method: http.MethodPost, path: "/trips"},
	}
	h := middleware.NewCORSHandler([]string{expoOrigin})(okHandler)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tt.path, nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", tt.method)
			// Browsers send request header names lower-cased.
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300, "preflight answers 2xx either way")
			if !tt.wantAllow {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
				return
			}
			assert.Equal(t, expoOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), tt.wantMethod)
		})
	}
}

func TestCORSHandler_ExportExposesContentDisposition(t *testing.T) {
	h := middleware.NewCORSHandler([]string{expoOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips/1/export?format=ics", nil)
	req.Header.Set("Origin", expoOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, expoOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSHandler_SameOriginRequestsPassThrough(t *testing.T) {
	h := middleware.NewCORSHandler([]string{expoOrigin})(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
