// Package router dispatches inbound gateway events to the right handler by
// sender role, serializing all events from one sender so each conversation
// and each operator channel is handled strictly in arrival order.
package router

import (
	"sync"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/session"
)

// Store holds the live conversation sessions. Sessions are process-local and
// intentionally not persisted; a restart simply starts every dialog over.
//
// The map itself is mutex-guarded. Mutation of an individual session happens
// only inside that sender's serialized handler.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*session.Session)}
}

// GetOrCreate returns the customer's session, creating a fresh one in the
// Initial state when none exists.
func (s *Store) GetOrCreate(customer kernel.Phone) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[customer.String()]; ok {
		return sess, nil
	}

	sess, err := session.NewSession(customer)
	if err != nil {
		return nil, err
	}

	s.sessions[customer.String()] = sess
	return sess, nil
}

// Remove drops the customer's session.
func (s *Store) Remove(customer kernel.Phone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, customer.String())
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Reap removes sessions idle for at least ttl and returns how many were
// dropped. Called periodically by the session reaper job.
func (s *Store) Reap(ttl time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for key, sess := range s.sessions {
		if sess.IsIdle(ttl, now) {
			delete(s.sessions, key)
			reaped++
		}
	}
	return reaped
}
