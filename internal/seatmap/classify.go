package seatmap

import "fmt"

// CycleSeatType advances the seat at (row, column) to the next type in the
// click cycle and returns the new type.
func (m Matrix) CycleSeatType(row, column int) (SeatType, error) {
	if err := m.checkCell(row, column); err != nil {
		return "", err
	}
	s := &m[row][column]
	s.Type = s.Type.Next()
	return s.Type, nil
}

// SetRowType assigns t to every seat of one row.
func (m Matrix) SetRowType(row int, t SeatType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSeatType, t)
	}
	if err := m.checkRow(row); err != nil {
		return err
	}
	for c := range m[row] {
		m[row][c].Type = t
	}
	return nil
}

// SetTypeByID assigns t to the seats named in ids and returns how many
// seats were changed.  Ids that do not address a seat are skipped.
func (m Matrix) SetTypeByID(ids []string, t SeatType) (int, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSeatType, t)
	}
	n := 0
	for _, id := range ids {
		r, c, err := ParseSeatID(id)
		if err != nil || m.checkCell(r, c) != nil {
			continue
		}
		m[r][c].Type = t
		n++
	}
	return n, nil
}

// Counts tallies seats per type and per status.
type Counts struct {
	Total    int                `json:"total"`
	ByType   map[SeatType]int   `json:"by_type"`
	ByStatus map[SeatStatus]int `json:"by_status"`
}

// Count summarizes the matrix.
func (m Matrix) Count() Counts {
	out := Counts{
		ByType:   make(map[SeatType]int, len(typeCycle)),
		ByStatus: make(map[SeatStatus]int, 3),
	}
	for _, row := range m {
		for _, s := range row {
			out.Total++
			out.ByType[s.Type]++
			out.ByStatus[s.Status]++
		}
	}
	return out
}

// WithStatuses returns a copy of the matrix whose seat statuses are taken
// from statuses, keyed by seat id.  Seats missing from the map are shown
// as available.  The receiver is not modified.
func (m Matrix) WithStatuses(statuses map[string]SeatStatus) Matrix {
	out := m.Clone()
	for r := range out {
		for c := range out[r] {
			st, ok := statuses[out[r][c].ID]
			if !ok || !st.Valid() {
				st = StatusAvailable
			}
			out[r][c].Status = st
		}
	}
	return out
}
