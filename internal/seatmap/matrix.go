package seatmap

import "fmt"

// Matrix is the seating layout of a room: an ordered list of rows, each an
// ordered list of seats.  Every row has the same length and every seat's id
// matches its position.  A nil or empty Matrix means "not configured yet".
type Matrix [][]Seat

// Generate builds a rows×columns grid of standard, available seats.
func Generate(rows, columns int) (Matrix, error) {
	if rows < 1 || columns < 1 {
		return nil, ErrEmptyDimensions
	}
	m := make(Matrix, rows)
	for r := range m {
		m[r] = newRow(r, columns)
	}
	return m, nil
}

func newRow(r, columns int) []Seat {
	row := make([]Seat, columns)
	for c := range row {
		row[c] = newSeat(r, c)
	}
	return row
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Columns returns the number of seats per row, or 0 for an empty matrix.
func (m Matrix) Columns() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Capacity is the total number of seats.
func (m Matrix) Capacity() int { return m.Rows() * m.Columns() }

// Empty reports whether the layout has not been configured.
func (m Matrix) Empty() bool { return len(m) == 0 }

// Seat returns the seat at (row, column).
func (m Matrix) Seat(row, column int) (Seat, error) {
	if err := m.checkCell(row, column); err != nil {
		return Seat{}, err
	}
	return m[row][column], nil
}

func (m Matrix) checkRow(row int) error {
	if row < 0 || row >= len(m) {
		return fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, row, len(m))
	}
	return nil
}

func (m Matrix) checkColumn(column int) error {
	if column < 0 || column >= m.Columns() {
		return fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, column, m.Columns())
	}
	return nil
}

func (m Matrix) checkCell(row, column int) error {
	if err := m.checkRow(row); err != nil {
		return err
	}
	return m.checkColumn(column)
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for r, row := range m {
		out[r] = append([]Seat(nil), row...)
	}
	return out
}

// Validate checks rectangularity and the id invariant.
func (m Matrix) Validate() error {
	cols := m.Columns()
	for r, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d seats, want %d", ErrNotRectangular, r, len(row), cols)
		}
		for c, s := range row {
			if s.Row != r || s.Column != c || s.ID != SeatID(r, c) {
				return fmt.Errorf("seat %q at %d,%d does not match its position", s.ID, r, c)
			}
		}
	}
	return nil
}

// Renumber rewrites every seat's coordinates and id from its position.  It
// is used to repair matrices loaded from outside the editor.  Rows of
// differing length are rejected because renumbering cannot fix them.
func (m Matrix) Renumber() error {
	cols := m.Columns()
	for r := range m {
		if len(m[r]) != cols {
			return fmt.Errorf("%w: row %d has %d seats, want %d", ErrNotRectangular, r, len(m[r]), cols)
		}
		m.renumberRow(r)
	}
	return nil
}

func (m Matrix) renumberRow(r int) {
	for c := range m[r] {
		m[r][c].place(r, c)
	}
}

// InsertRow adds a row of default seats immediately after afterIndex.  An
// afterIndex of -1 inserts before the first row.  Rows that end up below
// the new row are renumbered.
func (m *Matrix) InsertRow(afterIndex int) error {
	grid := *m
	if len(grid) == 0 {
		return fmt.Errorf("%w: matrix has no rows", ErrIndexOutOfRange)
	}
	if afterIndex < -1 || afterIndex >= len(grid) {
		return fmt.Errorf("%w: insert after row %d of %d", ErrIndexOutOfRange, afterIndex, len(grid))
	}
	at := afterIndex + 1
	cols := grid.Columns()
	grid = append(grid, nil)
	copy(grid[at+1:], grid[at:])
	grid[at] = newRow(at, cols)
	for r := at + 1; r < len(grid); r++ {
		grid.renumberRow(r)
	}
	*m = grid
	return nil
}

// InsertColumn adds a default seat after afterIndex in every row.  An
// afterIndex of -1 inserts before the first column.  Seats right of the
// insertion point are renumbered.
func (m *Matrix) InsertColumn(afterIndex int) error {
	grid := *m
	if len(grid) == 0 {
		return fmt.Errorf("%w: matrix has no rows", ErrIndexOutOfRange)
	}
	if afterIndex < -1 || afterIndex >= grid.Columns() {
		return fmt.Errorf("%w: insert after column %d of %d", ErrIndexOutOfRange, afterIndex, grid.Columns())
	}
	at := afterIndex + 1
	for r := range grid {
		row := append(grid[r], Seat{})
		copy(row[at+1:], row[at:])
		row[at] = newSeat(r, at)
		for c := at + 1; c < len(row); c++ {
			row[c].place(r, c)
		}
		grid[r] = row
	}
	return nil
}

// RemoveRow deletes the row at index and renumbers the rows below it.  The
// last remaining row cannot be removed.
func (m *Matrix) RemoveRow(index int) error {
	grid := *m
	if len(grid) <= 1 {
		return ErrLastRow
	}
	if err := grid.checkRow(index); err != nil {
		return err
	}
	grid = append(grid[:index], grid[index+1:]...)
	for r := index; r < len(grid); r++ {
		grid.renumberRow(r)
	}
	*m = grid
	return nil
}

// RemoveColumn deletes the seat at index from every row and renumbers the
// seats to its right.  The last remaining column cannot be removed.
func (m *Matrix) RemoveColumn(index int) error {
	grid := *m
	if grid.Columns() <= 1 {
		return ErrLastColumn
	}
	if err := grid.checkColumn(index); err != nil {
		return err
	}
	for r := range grid {
		row := append(grid[r][:index], grid[r][index+1:]...)
		for c := index; c < len(row); c++ {
			row[c].place(r, c)
		}
		grid[r] = row
	}
	return nil
}
