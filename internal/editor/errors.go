package editor

import (
	"errors"

	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

var (
	ErrPreviewMode     = errors.New("the layout cannot be edited in preview mode")
	ErrActionPending   = errors.New("another change is waiting for confirmation")
	ErrNoPendingAction = errors.New("there is no change waiting for confirmation")
	ErrEmptySelection  = errors.New("select at least one seat first")
	ErrUnknownAction   = errors.New("unknown layout action")
	ErrNotPreviewing   = errors.New("switch to preview mode to view occupancy")
)

// IsRefusal reports whether err is a policy refusal that left the session
// unchanged, as opposed to malformed input or an internal failure.
func IsRefusal(err error) bool {
	for _, target := range []error{
		ErrPreviewMode, ErrActionPending, ErrNoPendingAction, ErrEmptySelection, ErrNotPreviewing,
		seatmap.ErrLastRow, seatmap.ErrLastColumn,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
