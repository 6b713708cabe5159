package editor

import (
	"fmt"

	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// ActionType names a structural edit.
type ActionType string

const (
	AddRow       ActionType = "addRow"
	AddColumn    ActionType = "addColumn"
	RemoveRow    ActionType = "removeRow"
	RemoveColumn ActionType = "removeColumn"
)

// PendingAction is a structural edit waiting for the operator to confirm
// it.  For insertions Index is the row or column the new one goes after
// (-1 for "before the first"); for removals it is the one to delete.
type PendingAction struct {
	Type  ActionType `json:"type"`
	Index int        `json:"index"`
}

// Describe renders the confirmation prompt for the action.
func (a PendingAction) Describe() string {
	switch a.Type {
	case AddRow:
		if a.Index < 0 {
			return "insert a new row before row " + seatmap.RowLabel(0)
		}
		return "insert a new row after row " + seatmap.RowLabel(a.Index)
	case AddColumn:
		if a.Index < 0 {
			return "insert a new column before column " + seatmap.ColumnLabel(0)
		}
		return "insert a new column after column " + seatmap.ColumnLabel(a.Index)
	case RemoveRow:
		return "remove row " + seatmap.RowLabel(a.Index)
	case RemoveColumn:
		return "remove column " + seatmap.ColumnLabel(a.Index)
	}
	return string(a.Type)
}

// validate checks the action against the current grid without applying
// it.  The minimum size rule is left to the matrix so that a removal of
// the last row is still reported when it is confirmed.
func (a PendingAction) validate(m seatmap.Matrix) error {
	var lo, hi int
	switch a.Type {
	case AddRow:
		lo, hi = -1, m.Rows()-1
	case AddColumn:
		lo, hi = -1, m.Columns()-1
	case RemoveRow:
		lo, hi = 0, m.Rows()-1
	case RemoveColumn:
		lo, hi = 0, m.Columns()-1
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	if a.Index < lo || a.Index > hi {
		return fmt.Errorf("%w: %s index %d not in [%d, %d]", seatmap.ErrIndexOutOfRange, a.Type, a.Index, lo, hi)
	}
	return nil
}

// apply runs the action on m.
func (a PendingAction) apply(m *seatmap.Matrix) error {
	switch a.Type {
	case AddRow:
		return m.InsertRow(a.Index)
	case AddColumn:
		return m.InsertColumn(a.Index)
	case RemoveRow:
		return m.RemoveRow(a.Index)
	case RemoveColumn:
		return m.RemoveColumn(a.Index)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

// Confirmer holds at most one structural edit until it is confirmed or
// cancelled.  While an action is held further requests are refused.
type Confirmer struct {
	Pending *PendingAction `json:"pending,omitempty"`
}

// Busy reports whether an action is waiting for confirmation.
func (c *Confirmer) Busy() bool { return c.Pending != nil }

// Prompt is the text of the open confirmation, or "" when none is open.
func (c *Confirmer) Prompt() string {
	if c.Pending == nil {
		return ""
	}
	return c.Pending.Describe()
}

// Request parks a for confirmation and returns its prompt.
func (c *Confirmer) Request(a PendingAction, m seatmap.Matrix) (string, error) {
	if c.Pending != nil {
		return "", ErrActionPending
	}
	if err := a.validate(m); err != nil {
		return "", err
	}
	c.Pending = &a
	return a.Describe(), nil
}

// Confirm applies the parked action to m.  The slot is cleared whether or
// not the matrix accepted the edit.
func (c *Confirmer) Confirm(m *seatmap.Matrix) (PendingAction, error) {
	if c.Pending == nil {
		return PendingAction{}, ErrNoPendingAction
	}
	a := *c.Pending
	c.Pending = nil
	return a, a.apply(m)
}

// Cancel drops the parked action.  It reports false when nothing was parked.
func (c *Confirmer) Cancel() (PendingAction, bool) {
	if c.Pending == nil {
		return PendingAction{}, false
	}
	a := *c.Pending
	c.Pending = nil
	return a, true
}
