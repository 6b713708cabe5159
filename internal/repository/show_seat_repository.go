package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// ErrShowNotFound is returned when a show does not exist or is scheduled
// in another room.
var ErrShowNotFound = errors.New("show not found in this room")

// ShowSeatRepo reads seat occupancy written by the booking system.
type ShowSeatRepo struct {
	db *sql.DB
}

// NewShowSeatRepo constructs a ShowSeatRepo with the given DB handle.
func NewShowSeatRepo(db *sql.DB) *ShowSeatRepo {
	return &ShowSeatRepo{db: db}
}

// occupancy maps show_seats.status onto the preview statuses.
func occupancy(status string) seatmap.SeatStatus {
	switch status {
	case model.ShowSeatReserved:
		return seatmap.StatusOccupied
	case model.ShowSeatHeld:
		return seatmap.StatusReserved
	default:
		return seatmap.StatusAvailable
	}
}

// ListByShow returns the show_seats rows of showID, which must be
// scheduled in roomID.
func (r *ShowSeatRepo) ListByShow(ctx context.Context, roomID, showID uint64) ([]model.ShowSeat, error) {
	var found uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ? AND room_id = ?`, showID, roomID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find show %d: %w", showID, err)
	}

	const q = `SELECT show_id, row_index, col_index, status
	           FROM show_seats
	           WHERE show_id = ?
	           ORDER BY row_index, col_index`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, fmt.Errorf("list show seats: %w", err)
	}
	defer rows.Close()

	var out []model.ShowSeat
	for rows.Next() {
		var s model.ShowSeat
		if err := rows.Scan(&s.ShowID, &s.Row, &s.Column, &s.Status); err != nil {
			return nil, fmt.Errorf("scan show seat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StatusesByShow returns the preview status of every booked seat of
// showID keyed by seat id.  Seats without a row are free.
func (r *ShowSeatRepo) StatusesByShow(ctx context.Context, roomID, showID uint64) (map[string]seatmap.SeatStatus, error) {
	seats, err := r.ListByShow(ctx, roomID, showID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]seatmap.SeatStatus, len(seats))
	for _, s := range seats {
		out[seatmap.SeatID(s.Row, s.Column)] = occupancy(s.Status)
	}
	return out, nil
}
