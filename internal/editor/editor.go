// Package editor implements a seat layout editing session for one room.
//
// An Editor takes a Room by value, works on its own copy of the seat
// matrix, and hands the result back only through the callback passed to
// Save.  Classification edits (seat clicks, row types, batch apply) take
// effect immediately.  Structural edits (adding or removing rows and
// columns) are parked in a Confirmer until the operator confirms them.
// A preview mode shows occupancy instead of seat types and refuses edits.
//
// Refusals such as removing the last row never modify the session; they
// are returned as errors and also recorded as the session Notice so a
// client can show them to the operator.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// Notice levels.
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
)

// Notice is the last user facing message produced by the session.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Editor is one editing session.  It is not safe for concurrent use.
type Editor struct {
	room      model.Room
	matrix    seatmap.Matrix
	selected  Selection
	mode      Mode
	confirmer Confirmer
	notice    *Notice
}

// Open starts a session for room.  A room without a seat matrix gets a
// freshly generated Rows×Columns grid; a supplied matrix is copied and
// its seat ids are renumbered from their positions.
func Open(room model.Room) (*Editor, error) {
	var grid seatmap.Matrix
	if room.SeatMatrix.Empty() {
		g, err := seatmap.Generate(room.Rows, room.Columns)
		if err != nil {
			return nil, fmt.Errorf("generate layout for room %d: %w", room.ID, err)
		}
		grid = g
	} else {
		grid = room.SeatMatrix.Clone()
		if err := grid.Renumber(); err != nil {
			return nil, fmt.Errorf("load layout for room %d: %w", room.ID, err)
		}
	}
	room.SeatMatrix = nil
	return &Editor{
		room:     room,
		matrix:   grid,
		selected: Selection{},
		mode:     ModeEdit,
	}, nil
}

func (e *Editor) say(level, format string, args ...any) {
	e.notice = &Notice{Level: level, Message: fmt.Sprintf(format, args...)}
}

// refuse records err as a warning and returns it.
func (e *Editor) refuse(err error) error {
	e.notice = &Notice{Level: NoticeWarning, Message: err.Error()}
	return err
}

func (e *Editor) requireEditable() error {
	if !e.mode.Editable() {
		return e.refuse(ErrPreviewMode)
	}
	return nil
}

// ClickSeat handles a click on the seat at (row, column).  With the
// multi-select modifier held the seat's selection is toggled; otherwise
// its type advances one step in the cycle.  Exactly one of the two
// happens per click.
func (e *Editor) ClickSeat(row, column int, modifier bool) error {
	if err := e.requireEditable(); err != nil {
		return err
	}
	if modifier {
		_, err := e.ToggleSeatSelection(row, column)
		return err
	}
	_, err := e.CycleSeatType(row, column)
	return err
}

// CycleSeatType advances the seat type standard → vip → disabled → standard.
func (e *Editor) CycleSeatType(row, column int) (seatmap.SeatType, error) {
	if err := e.requireEditable(); err != nil {
		return "", err
	}
	t, err := e.matrix.CycleSeatType(row, column)
	if err != nil {
		return "", err
	}
	e.notice = nil
	return t, nil
}

// ToggleSeatSelection adds or removes the seat from the batch selection
// and reports whether it is selected afterwards.
func (e *Editor) ToggleSeatSelection(row, column int) (bool, error) {
	if err := e.requireEditable(); err != nil {
		return false, err
	}
	s, err := e.matrix.Seat(row, column)
	if err != nil {
		return false, err
	}
	e.notice = nil
	return e.selected.Toggle(s.ID), nil
}

// SetRowType gives every seat in row the type t.
func (e *Editor) SetRowType(row int, t seatmap.SeatType) error {
	if err := e.requireEditable(); err != nil {
		return err
	}
	if err := e.matrix.SetRowType(row, t); err != nil {
		return err
	}
	e.say(NoticeSuccess, "row %s set to %s", seatmap.RowLabel(row), t)
	return nil
}

// ApplySelectedType gives every selected seat the type t, clears the
// selection and returns how many seats changed.
func (e *Editor) ApplySelectedType(t seatmap.SeatType) (int, error) {
	if err := e.requireEditable(); err != nil {
		return 0, err
	}
	if len(e.selected) == 0 {
		return 0, e.refuse(ErrEmptySelection)
	}
	n, err := e.matrix.SetTypeByID(e.selected.IDs(), t)
	if err != nil {
		return 0, err
	}
	e.selected.Clear()
	e.say(NoticeSuccess, "updated %d seats to %s", n, t)
	return n, nil
}

// ClearSelection drops the batch selection.
func (e *Editor) ClearSelection() {
	e.selected.Clear()
	e.say(NoticeInfo, "selection cleared")
}

// ToggleMode switches between edit and preview.  It never touches the
// matrix or the selection.  It is refused while a confirmation is open.
func (e *Editor) ToggleMode() (Mode, error) {
	if e.confirmer.Busy() {
		return e.mode, e.refuse(ErrActionPending)
	}
	e.mode = e.mode.Toggle()
	e.notice = nil
	return e.mode, nil
}

// RequestAction parks a structural edit and returns its confirmation prompt.
func (e *Editor) RequestAction(a PendingAction) (string, error) {
	if err := e.requireEditable(); err != nil {
		return "", err
	}
	prompt, err := e.confirmer.Request(a, e.matrix)
	if err != nil {
		if IsRefusal(err) {
			return "", e.refuse(err)
		}
		return "", err
	}
	e.notice = nil
	return prompt, nil
}

// ConfirmAction applies the parked structural edit.  A refused removal
// leaves the matrix as it was and closes the confirmation.  A successful
// edit clears the selection because seat ids may have shifted.
func (e *Editor) ConfirmAction() (PendingAction, error) {
	a, err := e.confirmer.Confirm(&e.matrix)
	if err != nil {
		return a, e.refuse(err)
	}
	e.selected.Clear()
	e.say(NoticeSuccess, "done: %s", a.Describe())
	return a, nil
}

// CancelAction drops the parked structural edit without applying it.
func (e *Editor) CancelAction() (PendingAction, error) {
	a, ok := e.confirmer.Cancel()
	if !ok {
		return a, e.refuse(ErrNoPendingAction)
	}
	e.say(NoticeInfo, "cancelled: %s", a.Describe())
	return a, nil
}

// Preview returns the layout with seat statuses taken from statuses.  The
// session matrix is not modified.  It is only available in preview mode.
func (e *Editor) Preview(statuses map[string]seatmap.SeatStatus) (seatmap.Matrix, error) {
	if e.mode.Editable() {
		return nil, e.refuse(ErrNotPreviewing)
	}
	if statuses == nil {
		return e.matrix.Clone(), nil
	}
	return e.matrix.WithStatuses(statuses), nil
}

// Room returns the room as it would be saved now.
func (e *Editor) Room() model.Room {
	r := e.room
	r.SeatMatrix = e.matrix.Clone()
	r.SyncDimensions()
	return r
}

// Save hands the edited room to onSave.  Rows, Columns and Capacity are
// recomputed from the matrix.  The returned room is the one passed to
// onSave.
func (e *Editor) Save(onSave func(model.Room) error) (model.Room, error) {
	r := e.Room()
	if onSave != nil {
		if err := onSave(r); err != nil {
			return r, err
		}
	}
	e.Saved(r)
	return r, nil
}

// Saved records that r, a room returned by Room or Save, has been
// persisted.  Sessions that persist the room themselves call it on the
// current session once the write has succeeded.
func (e *Editor) Saved(r model.Room) {
	e.room.Rows, e.room.Columns, e.room.Capacity = r.Rows, r.Columns, r.Capacity
	e.say(NoticeSuccess, "layout of %q saved: %d seats", r.Name, r.Capacity)
}

// Back leaves the session without saving.
func (e *Editor) Back(onBack func()) {
	if onBack != nil {
		onBack()
	}
}

// Mode returns the current view mode.
func (e *Editor) Mode() Mode { return e.mode }

// Matrix returns a copy of the layout being edited.
func (e *Editor) Matrix() seatmap.Matrix { return e.matrix.Clone() }

// Selected returns the selected seat ids in order.
func (e *Editor) Selected() []string { return e.selected.IDs() }

// Pending returns the action waiting for confirmation, if any.
func (e *Editor) Pending() *PendingAction {
	if e.confirmer.Pending == nil {
		return nil
	}
	a := *e.confirmer.Pending
	return &a
}

// Notice returns the last user facing message, if any.
func (e *Editor) Notice() *Notice { return e.notice }

// State is the client view of a session.
type State struct {
	Room     model.Room     `json:"room"`
	Mode     Mode           `json:"mode"`
	Rows     int            `json:"rows"`
	Columns  int            `json:"columns"`
	Grid     [][]Cell       `json:"grid"`
	Selected []string       `json:"selected"`
	Pending  *PendingAction `json:"pending,omitempty"`
	Prompt   string         `json:"prompt,omitempty"`
	Controls Controls       `json:"controls"`
	Counts   seatmap.Counts `json:"counts"`
	Notice   *Notice        `json:"notice,omitempty"`
}

// State renders the session for a client.
func (e *Editor) State() State {
	return State{
		Room:     e.Room(),
		Mode:     e.mode,
		Rows:     e.matrix.Rows(),
		Columns:  e.matrix.Columns(),
		Grid:     e.mode.Render(e.matrix, e.selected),
		Selected: e.selected.IDs(),
		Pending:  e.Pending(),
		Prompt:   e.confirmer.Prompt(),
		Controls: e.mode.Controls(e.confirmer.Busy()),
		Counts:   e.matrix.Count(),
		Notice:   e.notice,
	}
}

// snapshot is the persisted form of an Editor.
type snapshot struct {
	Room     model.Room     `json:"room"`
	Matrix   seatmap.Matrix `json:"matrix"`
	Selected Selection      `json:"selected"`
	Mode     Mode           `json:"mode"`
	Pending  *PendingAction `json:"pending,omitempty"`
	Notice   *Notice        `json:"notice,omitempty"`
}

// MarshalJSON encodes the full session so it can be stored between requests.
func (e *Editor) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Room:     e.room,
		Matrix:   e.matrix,
		Selected: e.selected,
		Mode:     e.mode,
		Pending:  e.confirmer.Pending,
		Notice:   e.notice,
	})
}

// UnmarshalJSON restores a session written by MarshalJSON.
func (e *Editor) UnmarshalJSON(b []byte) error {
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if err := s.Matrix.Validate(); err != nil {
		return fmt.Errorf("stored session: %w", err)
	}
	if s.Selected == nil {
		s.Selected = Selection{}
	}
	if s.Mode != ModePreview {
		s.Mode = ModeEdit
	}
	*e = Editor{
		room:      s.Room,
		matrix:    s.Matrix,
		selected:  s.Selected,
		mode:      s.Mode,
		confirmer: Confirmer{Pending: s.Pending},
		notice:    s.Notice,
	}
	return nil
}
