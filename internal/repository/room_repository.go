package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// seatInsertBatch bounds the number of rows in one multi-row INSERT.
const seatInsertBatch = 500

// RoomRepo stores rooms in `rooms` and their layouts in `room_seats`.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = `id, name, room_type, capacity, status, seat_rows, seat_cols, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, r *model.Room) error {
	return row.Scan(&r.ID, &r.Name, &r.Type, &r.Capacity, &r.Status, &r.Rows, &r.Columns, &r.CreatedAt, &r.UpdatedAt)
}

// Create inserts a room without a layout.  Capacity is derived from Rows
// and Columns.  After insert the ID and timestamps of r are populated.
func (repo *RoomRepo) Create(ctx context.Context, r *model.Room) error {
	if r.Status == "" {
		r.Status = model.RoomActive
	}
	r.Capacity = r.Rows * r.Columns
	const qInsert = `INSERT INTO rooms (name, room_type, capacity, status, seat_rows, seat_cols)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, qInsert, r.Name, r.Type, r.Capacity, r.Status, r.Rows, r.Columns)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	r.ID = uint64(id)

	// read the row back so timestamps and defaults are filled in
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	if err := scanRoom(repo.db.QueryRowContext(ctx, q, r.ID), r); err != nil {
		return fmt.Errorf("reload room %d: %w", r.ID, err)
	}
	return nil
}

// List returns every room ordered by id.  Layouts are not loaded.
func (repo *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		var r model.Room
		if err := scanRoom(rows, &r); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a room and its layout.  A room whose layout has not been
// designed yet comes back with an empty SeatMatrix.
func (repo *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var r model.Room
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	if err := scanRoom(repo.db.QueryRowContext(ctx, q, id), &r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room %d: %w", id, err)
	}
	grid, err := repo.loadLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	r.SeatMatrix = grid
	r.SyncDimensions()
	return &r, nil
}

func (repo *RoomRepo) loadLayout(ctx context.Context, roomID uint64) (seatmap.Matrix, error) {
	const q = `SELECT row_index, col_index, seat_type
	           FROM room_seats
	           WHERE room_id = ?
	           ORDER BY row_index, col_index`
	rows, err := repo.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("load layout of room %d: %w", roomID, err)
	}
	defer rows.Close()

	var grid seatmap.Matrix
	for rows.Next() {
		var (
			r, c int
			typ  string
		)
		if err := rows.Scan(&r, &c, &typ); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		t, err := seatmap.ParseSeatType(typ)
		if err != nil {
			return nil, fmt.Errorf("%w: room %d seat %d-%d: %v", ErrCorruptLayout, roomID, r, c, err)
		}
		// rows arrive ordered, so each seat is either the next one in the
		// current row or the first one of the next row
		switch {
		case r == len(grid) && c == 0:
			grid = append(grid, nil)
		case r != len(grid)-1 || c != len(grid[r]):
			return nil, fmt.Errorf("%w: room %d has a gap at %d-%d", ErrCorruptLayout, roomID, r, c)
		}
		grid[r] = append(grid[r], seatmap.Seat{
			ID:     seatmap.SeatID(r, c),
			Row:    r,
			Column: c,
			Type:   t,
			Status: seatmap.StatusAvailable,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: room %d: %v", ErrCorruptLayout, roomID, err)
	}
	return grid, nil
}

// SaveLayout replaces the stored layout of room.ID with room.SeatMatrix
// and updates the room's dimensions, all in one transaction.
func (repo *RoomRepo) SaveLayout(ctx context.Context, room model.Room) error {
	if err := room.SeatMatrix.Validate(); err != nil {
		return err
	}
	if room.SeatMatrix.Empty() {
		return fmt.Errorf("save layout of room %d: %w", room.ID, seatmap.ErrEmptyDimensions)
	}
	room.SyncDimensions()

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, room.ID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("lock room %d: %w", room.ID, err)
	}
	const qUpdate = `UPDATE rooms
	                 SET seat_rows = ?, seat_cols = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP
	                 WHERE id = ?`
	if _, err := tx.ExecContext(ctx, qUpdate, room.Rows, room.Columns, room.Capacity, room.ID); err != nil {
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM room_seats WHERE room_id = ?`, room.ID); err != nil {
		return fmt.Errorf("clear layout of room %d: %w", room.ID, err)
	}

	seats := make([]seatmap.Seat, 0, room.Capacity)
	for _, row := range room.SeatMatrix {
		seats = append(seats, row...)
	}
	for start := 0; start < len(seats); start += seatInsertBatch {
		end := start + seatInsertBatch
		if end > len(seats) {
			end = len(seats)
		}
		if err := insertSeats(ctx, tx, room.ID, seats[start:end]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit layout of room %d: %w", room.ID, err)
	}
	return nil
}

// insertSeats writes one batch with a single multi-row INSERT.
func insertSeats(ctx context.Context, tx *sql.Tx, roomID uint64, seats []seatmap.Seat) error {
	var b strings.Builder
	b.WriteString(`INSERT INTO room_seats (room_id, row_index, col_index, seat_code, seat_type) VALUES `)
	args := make([]any, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, roomID, s.Row, s.Column, s.Label(), string(s.Type))
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("insert seats of room %d: %w", roomID, err)
	}
	return nil
}

// Delete removes a room and its layout.  Rooms with shows that have not
// ended yet cannot be deleted and yield ErrConflict, as do rooms whose past
// shows are still referenced by the booking tables.
func (repo *RoomRepo) Delete(ctx context.Context, id uint64) error {
	var upcoming int
	const qShows = `SELECT COUNT(*) FROM shows WHERE room_id = ? AND ends_at > NOW()`
	if err := repo.db.QueryRowContext(ctx, qShows, id).Scan(&upcoming); err != nil {
		return fmt.Errorf("count shows of room %d: %w", id, err)
	}
	if upcoming > 0 {
		return ErrConflict
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if isMySQLError(err, mysqlRowReferenced) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
