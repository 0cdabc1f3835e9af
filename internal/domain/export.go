package domain

// TripExport is everything known about a trip, gathered for export as a
// calendar file or a spreadsheet.
type TripExport struct {
	Trip         Trip
	Participants []Participant
	Activities   []Activity
	Links        []Link
}

// ExportRow is a single row in the CSV export: one row per activity, with the
// trip fields repeated on every row. A trip without activities yields one row
// with empty activity fields so the trip still shows up.
type ExportRow struct {
	TripID      string
	Destination string
	Date        string // "2006-01-02" formatted day of the activity
	Time        string // "15:04", empty when the trip has no activities
	Title       string
}

// ExportRows flattens the export into CSV rows, preserving activity order.
func (e TripExport) ExportRows() []ExportRow {
	if len(e.Activities) == 0 {
		return []ExportRow{{TripID: e.Trip.ID.String(), Destination: e.Trip.Destination}}
	}
	rows := make([]ExportRow, 0, len(e.Activities))
	for _, a := range e.Activities {
		rows = append(rows, ExportRow{
			TripID:      e.Trip.ID.String(),
			Destination: e.Trip.Destination,
			Date:        a.OccursAt.Format("2006-01-02"),
			Time:        a.OccursAt.Format("15:04"),
			Title:       a.Title,
		})
	}
	return rows
}
