package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/cache"
	"github.com/iliyamo/cinema-seat-editor/internal/editor"
	"github.com/iliyamo/cinema-seat-editor/internal/middleware"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/queue"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
	"github.com/iliyamo/cinema-seat-editor/internal/session"
)

// OccupancySource reads booked seats for the preview overlay.
type OccupancySource interface {
	StatusesByShow(ctx context.Context, roomID, showID uint64) (map[string]seatmap.SeatStatus, error)
}

// errForeignSession is returned when a caller touches another operator's
// session.
var errForeignSession = errors.New("session belongs to another user")

// EditorHandler exposes editing sessions over HTTP.  Each request loads
// the session, applies one editor operation and stores it again.
type EditorHandler struct {
	Sessions  session.Store
	Rooms     RoomStore
	Occupancy OccupancySource
	Cache     *cache.LayoutCache
	Publisher queue.Publisher
	Log       *zap.Logger
}

func NewEditorHandler(sessions session.Store, rooms RoomStore, occ OccupancySource, lc *cache.LayoutCache, pub queue.Publisher, log *zap.Logger) *EditorHandler {
	if pub == nil {
		pub = queue.NopPublisher{}
	}
	return &EditorHandler{Sessions: sessions, Rooms: rooms, Occupancy: occ, Cache: lc, Publisher: pub, Log: log.Named("editor")}
}

// ----- DTOs -----

type clickReq struct {
	Row      *int `json:"row" validate:"required,min=0"`
	Column   *int `json:"column" validate:"required,min=0"`
	Modifier bool `json:"modifier"`
}
type typeReq struct {
	Type string `json:"type" validate:"required,seattype"`
}
type actionReq struct {
	Type  string `json:"type" validate:"required,oneof=addRow addColumn removeRow removeColumn"`
	Index *int   `json:"index" validate:"required,min=-1"`
}

type openResp struct {
	SessionID string       `json:"session_id"`
	State     editor.State `json:"state"`
}

type promptResp struct {
	Prompt string       `json:"prompt"`
	State  editor.State `json:"state"`
}

type previewResp struct {
	RoomID uint64          `json:"room_id"`
	ShowID uint64          `json:"show_id,omitempty"`
	Grid   [][]editor.Cell `json:"grid"`
	Matrix seatmap.Matrix  `json:"matrix"`
	Counts seatmap.Counts  `json:"counts"`
	Notice *editor.Notice  `json:"notice,omitempty"`
}

// owns reports whether the caller may use sess.  Admins may use any session.
func owns(c echo.Context, sess *session.Session) bool {
	uid, _ := middleware.UserID(c)
	return sess.UserID == uid || middleware.Role(c) == model.RoleAdmin
}

// update runs fn on the session named by :sid and writes the session's
// state, or the mapped error, as the response.
func (h *EditorHandler) update(c echo.Context, fn func(s *session.Session) error) error {
	sid := c.Param("sid")
	var state editor.State
	err := h.Sessions.Update(c.Request().Context(), sid, func(s *session.Session) error {
		if !owns(c, s) {
			return errForeignSession
		}
		err := fn(s)
		state = s.Editor.State()
		return err
	})
	if err != nil {
		return h.editorError(c, sid, err, &state)
	}
	return c.JSON(http.StatusOK, state)
}

// editorError maps err onto a response.  Refusals carry the session state
// so the client can show the notice.
func (h *EditorHandler) editorError(c echo.Context, sid string, err error, state *editor.State) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "editing session not found"})
	case errors.Is(err, errForeignSession):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case editor.IsRefusal(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "state": state})
	case errors.Is(err, seatmap.ErrIndexOutOfRange),
		errors.Is(err, seatmap.ErrUnknownSeatType),
		errors.Is(err, editor.ErrUnknownAction):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrShowNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	h.Log.Error("editor request failed", zap.String("session_id", sid), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// Open starts an editing session for room :id.
func (h *EditorHandler) Open(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	uid, _ := middleware.UserID(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return h.editorError(c, "", err, nil)
	}
	ed, err := editor.Open(*room)
	if err != nil {
		return h.editorError(c, "", err, nil)
	}
	sess := &session.Session{UserID: uid, RoomID: room.ID, Editor: ed}
	if err := h.Sessions.Create(ctx, sess); err != nil {
		return h.editorError(c, "", err, nil)
	}
	h.Log.Info("session opened", zap.String("session_id", sess.ID), zap.Uint64("room_id", room.ID), zap.Uint64("user_id", uid))
	return c.JSON(http.StatusCreated, openResp{SessionID: sess.ID, State: ed.State()})
}

// State returns the current session state.
func (h *EditorHandler) State(c echo.Context) error {
	sid := c.Param("sid")
	sess, err := h.Sessions.Get(c.Request().Context(), sid)
	if err != nil {
		return h.editorError(c, sid, err, nil)
	}
	if !owns(c, sess) {
		return h.editorError(c, sid, errForeignSession, nil)
	}
	return c.JSON(http.StatusOK, sess.Editor.State())
}

// ClickSeat cycles a seat's type, or toggles its selection when the
// multi-select modifier is set.
func (h *EditorHandler) ClickSeat(c echo.Context) error {
	var req clickReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	return h.update(c, func(s *session.Session) error {
		return s.Editor.ClickSeat(*req.Row, *req.Column, req.Modifier)
	})
}

// parseRow reads :row as a zero-based index ("1") or a row label ("B").
func parseRow(c echo.Context) (int, error) {
	v := c.Param("row")
	if row, err := strconv.Atoi(v); err == nil {
		return row, nil
	}
	if row, ok := seatmap.RowIndex(v); ok {
		return row, nil
	}
	return 0, errors.New("invalid row")
}

// SetRowType assigns one type to every seat of row :row.
func (h *EditorHandler) SetRowType(c echo.Context) error {
	row, err := parseRow(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req typeReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	t, err := seatmap.ParseSeatType(req.Type)
	if err != nil {
		return badRequest(c, err)
	}
	return h.update(c, func(s *session.Session) error {
		return s.Editor.SetRowType(row, t)
	})
}

// ApplySelection assigns one type to every selected seat.
func (h *EditorHandler) ApplySelection(c echo.Context) error {
	var req typeReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	t, err := seatmap.ParseSeatType(req.Type)
	if err != nil {
		return badRequest(c, err)
	}
	return h.update(c, func(s *session.Session) error {
		_, err := s.Editor.ApplySelectedType(t)
		return err
	})
}

// ClearSelection drops the selection.
func (h *EditorHandler) ClearSelection(c echo.Context) error {
	return h.update(c, func(s *session.Session) error {
		s.Editor.ClearSelection()
		return nil
	})
}

// ToggleMode switches between edit and preview.
func (h *EditorHandler) ToggleMode(c echo.Context) error {
	return h.update(c, func(s *session.Session) error {
		_, err := s.Editor.ToggleMode()
		return err
	})
}

// RequestAction parks a structural edit and answers with its prompt.
func (h *EditorHandler) RequestAction(c echo.Context) error {
	var req actionReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	sid := c.Param("sid")
	var (
		prompt string
		state  editor.State
	)
	err := h.Sessions.Update(c.Request().Context(), sid, func(s *session.Session) error {
		if !owns(c, s) {
			return errForeignSession
		}
		var err error
		prompt, err = s.Editor.RequestAction(editor.PendingAction{Type: editor.ActionType(req.Type), Index: *req.Index})
		state = s.Editor.State()
		return err
	})
	if err != nil {
		return h.editorError(c, sid, err, &state)
	}
	return c.JSON(http.StatusOK, promptResp{Prompt: prompt, State: state})
}

// ConfirmAction applies the parked structural edit.
func (h *EditorHandler) ConfirmAction(c echo.Context) error {
	return h.update(c, func(s *session.Session) error {
		_, err := s.Editor.ConfirmAction()
		return err
	})
}

// CancelAction drops the parked structural edit.
func (h *EditorHandler) CancelAction(c echo.Context) error {
	return h.update(c, func(s *session.Session) error {
		_, err := s.Editor.CancelAction()
		return err
	})
}

// Preview renders the layout with occupancy.  With ?show_id= the statuses
// come from that show's bookings; otherwise the stored statuses are used.
func (h *EditorHandler) Preview(c echo.Context) error {
	var showID uint64
	if v := c.QueryParam("show_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return badRequest(c, errors.New("invalid show_id"))
		}
		showID = id
	}
	sid := c.Param("sid")
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return h.editorError(c, sid, err, nil)
	}
	if !owns(c, sess) {
		return h.editorError(c, sid, errForeignSession, nil)
	}
	// occupancy is read before the session update, which may be retried
	var statuses map[string]seatmap.SeatStatus
	if showID != 0 && !sess.Editor.Mode().Editable() {
		if statuses, err = h.Occupancy.StatusesByShow(ctx, sess.RoomID, showID); err != nil {
			return h.editorError(c, sid, err, nil)
		}
	}

	var (
		resp  previewResp
		state editor.State
	)
	err = h.Sessions.Update(ctx, sid, func(s *session.Session) error {
		if !owns(c, s) {
			return errForeignSession
		}
		grid, err := s.Editor.Preview(statuses)
		state = s.Editor.State()
		if err != nil {
			return err
		}
		resp = previewResp{
			RoomID: s.RoomID,
			ShowID: showID,
			Grid:   editor.ModePreview.Render(grid, nil),
			Matrix: grid,
			Counts: grid.Count(),
			Notice: s.Editor.Notice(),
		}
		return nil
	})
	if err != nil {
		return h.editorError(c, sid, err, &state)
	}
	return c.JSON(http.StatusOK, resp)
}

// Save persists the session's layout, invalidates the public layout cache
// and announces the change on the queue.  The layout is written exactly
// once, outside the session update: the store may retry an update, a
// database commit must not be.
func (h *EditorHandler) Save(c echo.Context) error {
	sid := c.Param("sid")
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return h.editorError(c, sid, err, nil)
	}
	if !owns(c, sess) {
		return h.editorError(c, sid, errForeignSession, nil)
	}
	saved, err := sess.Editor.Save(func(r model.Room) error {
		return h.Rooms.SaveLayout(ctx, r)
	})
	if err != nil {
		return h.editorError(c, sid, err, nil)
	}

	if err := h.Cache.Invalidate(ctx, saved.ID); err != nil {
		h.Log.Warn("layout cache invalidate failed", zap.Uint64("room_id", saved.ID), zap.Error(err))
	}
	ev := queue.LayoutSavedEvent{
		RoomID:    saved.ID,
		RoomName:  saved.Name,
		UserID:    sess.UserID,
		SessionID: sid,
		Rows:      saved.Rows,
		Columns:   saved.Columns,
		Capacity:  saved.Capacity,
		ByType:    saved.SeatMatrix.Count().ByType,
		SavedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishLayoutSaved(context.WithoutCancel(ctx), ev); err != nil {
		h.Log.Warn("publish layout event failed", zap.Uint64("room_id", saved.ID), zap.Error(err))
	}
	h.Log.Info("layout saved", zap.String("session_id", sid), zap.Uint64("room_id", saved.ID), zap.Int("capacity", saved.Capacity))

	// record the save on the current session, which may have moved on
	// while the layout was written
	state := sess.Editor.State()
	err = h.Sessions.Update(ctx, sid, func(s *session.Session) error {
		s.Editor.Saved(saved)
		state = s.Editor.State()
		return nil
	})
	if err != nil {
		h.Log.Warn("record save in session failed", zap.String("session_id", sid), zap.Error(err))
	}
	return c.JSON(http.StatusOK, state)
}

// Back closes the session without saving.
func (h *EditorHandler) Back(c echo.Context) error {
	sid := c.Param("sid")
	ctx := c.Request().Context()
	sess, err := h.Sessions.Get(ctx, sid)
	if err != nil {
		return h.editorError(c, sid, err, nil)
	}
	if !owns(c, sess) {
		return h.editorError(c, sid, errForeignSession, nil)
	}
	var delErr error
	sess.Editor.Back(func() { delErr = h.Sessions.Delete(ctx, sid) })
	if delErr != nil && !errors.Is(delErr, session.ErrNotFound) {
		return h.editorError(c, sid, delErr, nil)
	}
	return c.NoContent(http.StatusNoContent)
}
