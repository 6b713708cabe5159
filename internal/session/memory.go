package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process.  It is used when Redis is not
// available and in tests.  Sessions are stored encoded so callers never
// share editor state.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]memEntry
}

// NewMemoryStore returns a store whose sessions expire after ttl of
// inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, m: make(map[string]memEntry)}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = NewID()
	}
	b, err := encode(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ID] = memEntry{data: b, expires: s.now().Add(s.ttl)}
	return nil
}

// load returns the live entry for id.  Callers hold s.mu.
func (s *MemoryStore) load(id string) (*Session, error) {
	e, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.m, id)
		return nil, ErrNotFound
	}
	return decode(e.data)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	e := s.m[id]
	e.expires = s.now().Add(s.ttl)
	s.m[id] = e
	return sess, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(id)
	if err != nil {
		return err
	}
	fnErr := fn(sess)
	b, err := encode(sess)
	if err != nil {
		return err
	}
	s.m[id] = memEntry{data: b, expires: s.now().Add(s.ttl)}
	return fnErr
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(id); err != nil {
		return err
	}
	delete(s.m, id)
	return nil
}
