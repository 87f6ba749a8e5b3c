// Package keyed provides strict per-key FIFO execution. Tasks submitted for
// the same key run one at a time in submission order; tasks for different
// keys run concurrently. Idle keys hold no resources.
package keyed

import "sync"

// Serializer orders task execution per key. The zero value is not usable;
// create instances via NewSerializer.
type Serializer struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	refs int
	// last is closed when the most recently submitted task for the key
	// finishes; the next task waits on it before running.
	last chan struct{}
}

// NewSerializer creates an empty Serializer.
func NewSerializer() *Serializer {
	return &Serializer{
		entries: make(map[string]*entry),
	}
}

// Do blocks until every task submitted earlier for key has completed, then
// runs fn. Submission order is fixed under the serializer's lock, so two
// callers racing on the same key are executed in the order they reached Do.
func (s *Serializer) Do(key string, fn func()) {
	done := make(chan struct{})

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	prev := e.last
	e.last = done
	e.refs++
	s.mu.Unlock()

	if prev != nil {
		<-prev
	}

	defer func() {
		close(done)
		s.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(s.entries, key)
		}
		s.mu.Unlock()
	}()

	fn()
}

// ActiveKeys returns the number of keys with pending or running tasks.
func (s *Serializer) ActiveKeys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
