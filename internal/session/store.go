// Package session keeps seat editor sessions between HTTP requests.
//
// A session is created when an operator opens a room in the editor and is
// addressed by a random id.  Each request loads the session, applies one
// editor operation and writes it back.  Sessions expire after a period of
// inactivity.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-seat-editor/internal/editor"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("editing session not found")

// Session is one operator's editor for one room.
type Session struct {
	ID     string         `json:"id"`
	UserID uint64         `json:"user_id"`
	RoomID uint64         `json:"room_id"`
	Editor *editor.Editor `json:"editor"`
}

// Store persists sessions.
//
// Update loads the session, runs fn and stores the session again, even
// when fn returns an error: editor operations leave the session
// consistent when they refuse, and a refusal may still close a pending
// confirmation.  fn's error is returned to the caller.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session id.
func NewID() string { return uuid.NewString() }

func encode(s *Session) ([]byte, error) { return json.Marshal(s) }

func decode(b []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.Editor == nil {
		return nil, errors.New("stored session has no editor")
	}
	return &s, nil
}
