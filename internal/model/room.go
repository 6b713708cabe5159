package model

import (
	"time"

	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// Room statuses.
const (
	RoomActive      = "active"
	RoomMaintenance = "maintenance"
	RoomClosed      = "closed"
)

// Room represents a screening room and its seat layout.  Rows, Columns and
// Capacity describe the layout; once SeatMatrix is configured they are
// always derived from it.  An empty SeatMatrix means the layout has not
// been designed yet and the editor will generate one from Rows×Columns.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – room name shown to operators and customers.
//  Type       – projection format (2D, 3D, IMAX, 4DX, ...).
//  Capacity   – Rows × Columns.
//  Status     – active, maintenance or closed.
//  Rows       – number of seat rows.
//  Columns    – number of seats per row.
//  SeatMatrix – the seat layout, row by row.
type Room struct {
	ID         uint64         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Capacity   int            `json:"capacity"`
	Status     string         `json:"status"`
	Rows       int            `json:"rows"`
	Columns    int            `json:"columns"`
	SeatMatrix seatmap.Matrix `json:"seatMatrix"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// SyncDimensions recomputes Rows, Columns and Capacity from SeatMatrix.
// It is a no-op for a room whose layout is not configured.
func (r *Room) SyncDimensions() {
	if r.SeatMatrix.Empty() {
		return
	}
	r.Rows = r.SeatMatrix.Rows()
	r.Columns = r.SeatMatrix.Columns()
	r.Capacity = r.Rows * r.Columns
}
