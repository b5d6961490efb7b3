package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
)

// Store keeps chat sessions in memory with a TTL measured from last
// activity. A background sweeper reclaims expired sessions; Close stops
// it.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
	done     chan struct{}
	closed   sync.Once
}

// NewStore starts a session store and its sweeper goroutine.
func NewStore(ttl, sweepInterval time.Duration) (*Store, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if sweepInterval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive")
	}
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s, nil
}

func (s *Store) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.purgeExpired(s.now())
		case <-s.done:
			return
		}
	}
}

func (s *Store) purgeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if now.Sub(session.LastActiveAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// Create registers a new session.
func (s *Store) Create(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get returns a snapshot of the session so readers never race the
// single writer.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat session not found")
	}
	if s.now().Sub(session.LastActiveAt) > s.ttl {
		delete(s.sessions, id)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat session not found")
	}
	return snapshot(session), nil
}

func snapshot(session *Session) *Session {
	copied := *session
	copied.Messages = append([]Message(nil), session.Messages...)
	return &copied
}

// Mutate runs fn against the session while holding the store lock so a
// single writer owns the transcript at a time. Expired sessions are
// dropped here just as on Get, and the returned snapshot reflects the
// mutated state.
func (s *Store) Mutate(id uuid.UUID, fn func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat session not found")
	}
	if s.now().Sub(session.LastActiveAt) > s.ttl {
		delete(s.sessions, id)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat session not found")
	}
	fn(session)
	return snapshot(session), nil
}

// Delete discards the session if present.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the sweeper. Sessions already held remain readable until
// process exit.
func (s *Store) Close() {
	s.closed.Do(func() { close(s.done) })
}
