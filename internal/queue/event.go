// Package queue carries layout change events over RabbitMQ.  The editor
// publishes a LayoutSavedEvent every time a layout is saved and a
// background consumer appends each event to an audit log.
package queue

import "github.com/iliyamo/cinema-seat-editor/internal/seatmap"

// LayoutSavedQueue is the durable queue layout events are published to.
const LayoutSavedQueue = "room.layout.saved"

// LayoutSavedEvent is published after a room layout has been written to the
// database.  It holds enough for downstream consumers to log or reindex
// without querying the primary database.
type LayoutSavedEvent struct {
	RoomID    uint64                   `json:"room_id"`
	RoomName  string                   `json:"room_name"`
	UserID    uint64                   `json:"user_id"`
	SessionID string                   `json:"session_id"`
	Rows      int                      `json:"rows"`
	Columns   int                      `json:"columns"`
	Capacity  int                      `json:"capacity"`
	ByType    map[seatmap.SeatType]int `json:"by_type"`
	SavedAt   string                   `json:"saved_at"`
}
