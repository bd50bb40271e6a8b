package session

import (
	"errors"
	"sync"
	"time"
)

// ErrStoreFull is returned by Put when the session cap is reached.
var ErrStoreFull = errors.New("session store is full")

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
}

// NewStore creates a store. max <= 0 means no cap.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
	}
}

// Put adds or replaces a session.
func (s *Store) Put(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, replacing := s.sessions[sess.ID]
	if !replacing && s.max > 0 && len(s.sessions) >= s.max {
		return ErrStoreFull
	}
	if replacing && old != sess {
		old.Close()
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete removes a session and closes its subscriptions.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes sessions idle longer than the TTL and returns how many
// were removed. Pinned sessions are kept.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	now := time.Now()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.Pinned {
			continue
		}
		if now.Sub(sess.LastUpdate()) > s.ttl {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	return len(expired)
}
