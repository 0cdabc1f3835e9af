package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/internal/api"
	"github.com/pkordes/trip-planner/internal/calendar"
	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"trip_id", "destination", "date", "time", "title"}

// ExportTrip handles GET /trips/{tripId}/export.
// ?format=ics (the default) returns an iCalendar file; ?format=csv returns
// one row per activity.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = api.FormatICS
	}
	if format != api.FormatICS && format != api.FormatCSV {
		writeErrorBody(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("format must be %q or %q", api.FormatICS, api.FormatCSV)))
		return
	}

	exp, err := s.svc.Export.Export(r.Context(), tripID)
	if err != nil {
		writeError(w, r, "trip", err)
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case api.FormatCSV:
		body = buildCSV(exp.ExportRows())
		contentType = "text/csv"
	default:
		body = []byte(calendar.Serialize(exp, s.now()))
		contentType = "text/calendar; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.%s"`, tripID, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// buildCSV encodes rows as CSV with a header line.
func buildCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{r.TripID, r.Destination, r.Date, r.Time, r.Title})
	}
	cw.Flush()
	return buf.Bytes()
}
