package editor

import "github.com/iliyamo/cinema-seat-editor/internal/seatmap"

// Mode selects how the grid is shown and whether it accepts edits.
type Mode string

const (
	// ModeEdit shows seat types and lets clicks change them.
	ModeEdit Mode = "edit"
	// ModePreview shows occupancy and ignores clicks.
	ModePreview Mode = "preview"
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModePreview {
		return ModeEdit
	}
	return ModePreview
}

// Editable reports whether seat clicks and layout controls are live.
func (m Mode) Editable() bool { return m != ModePreview }

// Controls lists which editor controls are shown in a mode.
type Controls struct {
	SeatClicks bool `json:"seat_clicks"`
	Structural bool `json:"structural"`
	RowType    bool `json:"row_type"`
	BatchApply bool `json:"batch_apply"`
}

// Controls returns the control visibility for the mode.  Structural
// controls are also hidden while a confirmation is open.
func (m Mode) Controls(pending bool) Controls {
	live := m.Editable()
	return Controls{
		SeatClicks: live,
		Structural: live && !pending,
		RowType:    live,
		BatchApply: live,
	}
}

// Cell is the rendered form of one seat.
type Cell struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Display     string `json:"display"`
	Selected    bool   `json:"selected"`
	Interactive bool   `json:"interactive"`
}

// Render projects the matrix for display.  In edit mode a cell shows its
// seat type; in preview mode it shows its status and is inert.
func (m Mode) Render(grid seatmap.Matrix, sel Selection) [][]Cell {
	out := make([][]Cell, len(grid))
	for r, row := range grid {
		out[r] = make([]Cell, len(row))
		for c, s := range row {
			cell := Cell{ID: s.ID, Label: s.Label()}
			if m.Editable() {
				cell.Display = string(s.Type)
				cell.Selected = sel.Has(s.ID)
				cell.Interactive = true
			} else {
				cell.Display = string(s.Status)
			}
			out[r][c] = cell
		}
	}
	return out
}
