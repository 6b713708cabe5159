// Package seatmap holds the seating grid of a cinema room and the edits an
// operator can make to it.  The grid is a rectangular matrix of seats whose
// identifiers are always derived from their current position, so every
// structural edit renumbers the seats it shifts.
package seatmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SeatType classifies a seat for pricing and accessibility.
type SeatType string

const (
	TypeStandard SeatType = "standard"
	TypeVIP      SeatType = "vip"
	TypeDisabled SeatType = "disabled"
)

// typeCycle is the order a single seat moves through when clicked.  The
// last entry wraps back to the first.
var typeCycle = []SeatType{TypeStandard, TypeVIP, TypeDisabled}

// SeatTypes returns the known seat types in cycle order.
func SeatTypes() []SeatType {
	out := make([]SeatType, len(typeCycle))
	copy(out, typeCycle)
	return out
}

// Next returns the type that follows t in the click cycle.  Unknown values
// restart the cycle at standard.
func (t SeatType) Next() SeatType {
	for i, c := range typeCycle {
		if c == t {
			return typeCycle[(i+1)%len(typeCycle)]
		}
	}
	return typeCycle[0]
}

// Valid reports whether t is one of the known seat types.
func (t SeatType) Valid() bool {
	for _, c := range typeCycle {
		if c == t {
			return true
		}
	}
	return false
}

// ParseSeatType normalizes a client supplied type name.  "accessible" is
// accepted as an alias for disabled.
func ParseSeatType(s string) (SeatType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "accessible" {
		v = string(TypeDisabled)
	}
	t := SeatType(v)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeatType, s)
	}
	return t, nil
}

// UnmarshalJSON rejects unknown seat types instead of storing them.
func (t *SeatType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseSeatType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// SeatStatus is the occupancy of a seat for one show.  The editor never
// changes it; it is filled in from the booking system for preview.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusOccupied  SeatStatus = "occupied"
	StatusReserved  SeatStatus = "reserved"
)

// Valid reports whether s is one of the known statuses.
func (s SeatStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusReserved:
		return true
	}
	return false
}

// Seat is one addressable position in a room.
type Seat struct {
	ID     string     `json:"id"`
	Row    int        `json:"row"`
	Column int        `json:"column"`
	Type   SeatType   `json:"type"`
	Status SeatStatus `json:"status"`
}

// SeatID builds the identifier of the seat at (row, column).
func SeatID(row, column int) string {
	return fmt.Sprintf("%d-%d", row, column)
}

// ParseSeatID splits an identifier produced by SeatID.
func ParseSeatID(id string) (row, column int, err error) {
	if _, err := fmt.Sscanf(id, "%d-%d", &row, &column); err != nil {
		return 0, 0, fmt.Errorf("invalid seat id %q", id)
	}
	if row < 0 || column < 0 || SeatID(row, column) != id {
		return 0, 0, fmt.Errorf("invalid seat id %q", id)
	}
	return row, column, nil
}

// newSeat returns a default seat placed at (row, column).
func newSeat(row, column int) Seat {
	return Seat{
		ID:     SeatID(row, column),
		Row:    row,
		Column: column,
		Type:   TypeStandard,
		Status: StatusAvailable,
	}
}

// place moves the seat to (row, column) and rewrites its id to match.
func (s *Seat) place(row, column int) {
	s.Row = row
	s.Column = column
	s.ID = SeatID(row, column)
}

// Label is the human readable name of the seat, e.g. "B3".
func (s Seat) Label() string {
	return RowLabel(s.Row) + ColumnLabel(s.Column)
}
