package daterange

// MarkKind identifies how a single calendar cell is highlighted.
type MarkKind int

const (
	// MarkSingle is a lone selected day: a range with only Start set.
	MarkSingle MarkKind = iota + 1
	MarkStart
	MarkMiddle
	MarkEnd
)

// String returns a stable lowercase name, used by the CLI output.
func (k MarkKind) String() string {
	switch k {
	case MarkSingle:
		return "single"
	case MarkStart:
		return "start"
	case MarkMiddle:
		return "middle"
	case MarkEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Highlight colours, taken from the app palette (lime for the range ends,
// zinc for the days in between).
const (
	colorEdge       = "#bef264"
	colorEdgeText   = "#1a2e05"
	colorMiddle     = "#27272a"
	colorMiddleText = "#d4d4d8"
)

// Mark is the highlight descriptor for one calendar day. The JSON shape is
// the "period" marking understood by the calendar component.
type Mark struct {
	Kind        MarkKind `json:"-"`
	Selected    bool     `json:"selected"`
	StartingDay bool     `json:"startingDay,omitempty"`
	EndingDay   bool     `json:"endingDay,omitempty"`
	Color       string   `json:"color"`
	TextColor   string   `json:"textColor"`
}

func newMark(kind MarkKind) Mark {
	m := Mark{Kind: kind, Selected: true, Color: colorEdge, TextColor: colorEdgeText}
	switch kind {
	case MarkSingle:
		m.StartingDay, m.EndingDay = true, true
	case MarkStart:
		m.StartingDay = true
	case MarkEnd:
		m.EndingDay = true
	case MarkMiddle:
		m.Color, m.TextColor = colorMiddle, colorMiddleText
	}
	return m
}

// MarkedDates returns the highlight for every selected day, keyed by the
// "2006-01-02" form of the day. Start is flagged as the range start, End as
// the range end and every day in between as middle. A range with only Start
// set (or with End equal to Start) marks that one day as a single selection.
// An empty range yields an empty, non-nil map.
func (r Range) MarkedDates() map[string]Mark {
	marks := make(map[string]Mark)
	if r.Start.IsZero() {
		return marks
	}
	if r.End.IsZero() || r.End.Equal(r.Start) {
		marks[r.Start.String()] = newMark(MarkSingle)
		return marks
	}

	for _, d := range r.Days() {
		kind := MarkMiddle
		switch {
		case d.Equal(r.Start):
			kind = MarkStart
		case d.Equal(r.End):
			kind = MarkEnd
		}
		marks[d.String()] = newMark(kind)
	}
	return marks
}
