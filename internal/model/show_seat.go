package model

// Occupancy states written by the booking system into show_seats.
const (
	ShowSeatFree     = "FREE"
	ShowSeatHeld     = "HELD"
	ShowSeatReserved = "RESERVED"
)

// ShowSeat is the booking system's view of one seat for one show.  The
// editor only reads these rows to colour the preview.
//
// Fields:
//  ShowID – the show being booked.
//  Row    – zero-based row of the seat in the room layout.
//  Column – zero-based column of the seat in the room layout.
//  Status – FREE, HELD or RESERVED.
type ShowSeat struct {
	ShowID uint64 // show_seats.show_id
	Row    int    // show_seats.row_index
	Column int    // show_seats.col_index
	Status string // show_seats.status
}
