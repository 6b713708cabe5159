package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-editor/internal/middleware"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/queue"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
	"github.com/iliyamo/cinema-seat-editor/internal/utils"
)

const testSecret = "handler-secret"

// fakeRooms is an in-memory RoomStore.
type fakeRooms struct {
	mu      sync.Mutex
	rooms   map[uint64]model.Room
	nextID  uint64
	saved   []model.Room
	busy    map[uint64]bool
	saveErr error
}

func newFakeRooms(rooms ...model.Room) *fakeRooms {
	f := &fakeRooms{rooms: map[uint64]model.Room{}, busy: map[uint64]bool{}, nextID: 100}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}
	return f
}

func (f *fakeRooms) Create(_ context.Context, r *model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	r.Capacity = r.Rows * r.Columns
	if r.Status == "" {
		r.Status = model.RoomActive
	}
	f.rooms[r.ID] = *r
	return nil
}

func (f *fakeRooms) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	r.SeatMatrix = r.SeatMatrix.Clone()
	return &r, nil
}

func (f *fakeRooms) List(context.Context) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		r.SeatMatrix = nil
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRooms) SaveLayout(_ context.Context, room model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.rooms[room.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	room.SeatMatrix = room.SeatMatrix.Clone()
	f.rooms[room.ID] = room
	f.saved = append(f.saved, room)
	return nil
}

func (f *fakeRooms) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; !ok {
		return repository.ErrRoomNotFound
	}
	if f.busy[id] {
		return repository.ErrConflict
	}
	delete(f.rooms, id)
	return nil
}

// fakeOccupancy answers StatusesByShow from a fixed map.
type fakeOccupancy struct {
	statuses map[string]seatmap.SeatStatus
	calls    int
}

func (f *fakeOccupancy) StatusesByShow(_ context.Context, _, showID uint64) (map[string]seatmap.SeatStatus, error) {
	f.calls++
	if showID == 404 {
		return nil, repository.ErrShowNotFound
	}
	return f.statuses, nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.LayoutSavedEvent
}

func (p *recordingPublisher) PublishLayoutSaved(_ context.Context, ev queue.LayoutSavedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func token(t *testing.T, userID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, role, 15)
	require.NoError(t, err)
	return tok.Token
}

func authMW() echo.MiddlewareFunc { return middleware.JWTAuth(testSecret) }

// call sends body (marshalled to JSON unless nil) and returns the recorder.
func call(t *testing.T, e *echo.Echo, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
