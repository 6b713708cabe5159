package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/cache"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
	"github.com/iliyamo/cinema-seat-editor/internal/repository"
	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// RoomStore is the part of repository.RoomRepo the handlers use.
type RoomStore interface {
	Create(ctx context.Context, r *model.Room) error
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	SaveLayout(ctx context.Context, room model.Room) error
	Delete(ctx context.Context, id uint64) error
}

// RoomHandler manages rooms and serves their public layout.
type RoomHandler struct {
	Rooms RoomStore
	Cache *cache.LayoutCache
	Log   *zap.Logger
}

func NewRoomHandler(rooms RoomStore, lc *cache.LayoutCache, log *zap.Logger) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Cache: lc, Log: log.Named("rooms")}
}

type createRoomReq struct {
	Name    string `json:"name" validate:"required,max=100"`
	Type    string `json:"type" validate:"required,max=20"`
	Rows    int    `json:"rows" validate:"required,min=1,max=100"`
	Columns int    `json:"columns" validate:"required,min=1,max=100"`
	Status  string `json:"status" validate:"omitempty,oneof=active maintenance closed"`
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// Create registers a room.  Its layout is generated the first time it is
// opened in the editor.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room := &model.Room{Name: req.Name, Type: req.Type, Rows: req.Rows, Columns: req.Columns, Status: req.Status}
	if err := h.Rooms.Create(ctx, room); err != nil {
		h.Log.Error("create room failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// List returns all rooms without layouts.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		h.Log.Error("list rooms failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms, "total": len(rooms)})
}

// Get returns one room with its layout.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return h.roomError(c, id, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room that has no upcoming shows.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is still used by shows"})
		}
		return h.roomError(c, id, err)
	}
	if err := h.Cache.Invalidate(ctx, id); err != nil {
		h.Log.Warn("layout cache invalidate failed", zap.Uint64("room_id", id), zap.Error(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// publicLayout is the guest view of a room's seats.
type publicLayout struct {
	RoomID   uint64         `json:"room_id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Rows     int            `json:"rows"`
	Columns  int            `json:"columns"`
	Capacity int            `json:"capacity"`
	Grid     [][]publicSeat `json:"grid"`
	Counts   seatmap.Counts `json:"counts"`
}

type publicSeat struct {
	ID    string           `json:"id"`
	Label string           `json:"label"`
	Type  seatmap.SeatType `json:"type"`
}

func newPublicLayout(r *model.Room) publicLayout {
	grid := make([][]publicSeat, len(r.SeatMatrix))
	for i, row := range r.SeatMatrix {
		grid[i] = make([]publicSeat, len(row))
		for j, s := range row {
			grid[i][j] = publicSeat{ID: s.ID, Label: s.Label(), Type: s.Type}
		}
	}
	return publicLayout{
		RoomID:   r.ID,
		Name:     r.Name,
		Type:     r.Type,
		Rows:     r.Rows,
		Columns:  r.Columns,
		Capacity: r.Capacity,
		Grid:     grid,
		Counts:   r.SeatMatrix.Count(),
	}
}

// Layout serves the saved layout of a room to guests, from the cache when
// possible.
func (h *RoomHandler) Layout(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if b, ok, err := h.Cache.Get(ctx, id); err != nil {
		h.Log.Warn("layout cache read failed", zap.Uint64("room_id", id), zap.Error(err))
	} else if ok {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(http.StatusOK, b)
	}

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return h.roomError(c, id, err)
	}
	if room.SeatMatrix.Empty() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not configured"})
	}
	b, err := json.Marshal(newPublicLayout(room))
	if err != nil {
		return err
	}
	if err := h.Cache.Set(ctx, id, b); err != nil {
		h.Log.Warn("layout cache write failed", zap.Uint64("room_id", id), zap.Error(err))
	}
	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSONBlob(http.StatusOK, b)
}

func (h *RoomHandler) roomError(c echo.Context, id uint64, err error) error {
	if errors.Is(err, repository.ErrRoomNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	}
	h.Log.Error("room query failed", zap.Uint64("room_id", id), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}
