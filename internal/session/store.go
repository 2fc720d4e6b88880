// Package session holds the process-wide session cell and the access guard that reads it.
package session

import (
	"sync"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
)

// Listener receives the new session value after every write.
type Listener = func(domainauth.Session)

type subscription struct {
	id uint64
	fn Listener
}

// Store is the single source of truth for the current session.
//
// Set delivers the new value to every subscriber, in subscription order, before it returns.
// Writes are serialized so notifications from two writes never interleave. Listeners may read
// the store but must not write to it.
type Store struct {
	writeMu sync.Mutex

	mu      sync.RWMutex
	current domainauth.Session
	subs    []subscription
	nextID  uint64
}

// NewStore returns a store whose initial value is an empty session in the hydrating phase.
func NewStore() *Store {
	return &Store{current: domainauth.Session{Phase: domainauth.PhaseHydrating}}
}

// Snapshot returns the current session value.
func (s *Store) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn for every subsequent write and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Set replaces the session and notifies subscribers synchronously.
// Only the session coordinator calls Set.
func (s *Store) Set(next domainauth.Session) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}
