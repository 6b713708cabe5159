package seatmap

import "errors"

// Refusals.  None of them leave the matrix modified.
var (
	// ErrLastRow is returned when removing the only remaining row.
	ErrLastRow = errors.New("cannot delete: the room must have at least 1 row")
	// ErrLastColumn is returned when removing the only remaining column.
	ErrLastColumn = errors.New("cannot delete: the room must have at least 1 column")
	// ErrIndexOutOfRange is returned for row or column indices outside the grid.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyDimensions is returned when generating a grid with zero rows or columns.
	ErrEmptyDimensions = errors.New("rows and columns must be at least 1")
	// ErrNotRectangular is returned when rows of a supplied matrix differ in length.
	ErrNotRectangular = errors.New("seat matrix is not rectangular")
	// ErrUnknownSeatType is returned for seat type names outside the closed set.
	ErrUnknownSeatType = errors.New("unknown seat type")
)
