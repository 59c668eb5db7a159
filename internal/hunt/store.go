package hunt

import (
	"errors"
	"sync"
	"time"
)

// Selection state is per session and per visit to the selection screen; it is
// not persisted. Entries idle longer than this are pruned opportunistically.
const defaultMaxIdle = 30 * time.Minute

var (
	// ErrNoSelection is returned when a session has no active selection.
	ErrNoSelection = errors.New("no active selection for session")
	// ErrResolveInProgress gates re-entrant hunts for the same session.
	ErrResolveInProgress = errors.New("a hunt is already resolving for this session")
)

// Store keeps each session's in-progress SelectionState in memory. All access
// is serialized through one mutex; callers only ever receive clones.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	maxIdle time.Duration
	now     func() time.Time
}

type entry struct {
	state    *SelectionState
	lastSeen time.Time
}

// NewStore builds an empty selection store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		maxIdle: defaultMaxIdle,
		now:     time.Now,
	}
}

// Reset creates (or replaces) the selection for a session and returns it.
func (s *Store) Reset(sessionID string) *SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	e := &entry{state: NewSelectionState(), lastSeen: s.now()}
	s.entries[sessionID] = e
	return e.state.Clone()
}

// Get returns a snapshot of the session's selection.
func (s *Store) Get(sessionID string) (*SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return e.state.Clone(), nil
}

// Toggle cycles one category for the session and returns the new snapshot.
func (s *Store) Toggle(sessionID, category string) (*SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.state.Toggle(category)
	return e.state.Clone(), nil
}

// ClearExcluded returns every excluded category to neutral.
func (s *Store) ClearExcluded(sessionID string) (*SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.state.ClearExcluded()
	return e.state.Clone(), nil
}

// BeginResolve marks the session's hunt as in flight and returns the snapshot
// to resolve against. Only one hunt may be resolving per session.
func (s *Store) BeginResolve(sessionID string) (*SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if e.state.IsResolving {
		return nil, ErrResolveInProgress
	}
	e.state.IsResolving = true
	return e.state.Clone(), nil
}

// EndResolve clears the in-flight flag after a hunt finishes or aborts.
func (s *Store) EndResolve(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[sessionID]; ok {
		e.state.IsResolving = false
	}
}

// Drop discards the session's selection, e.g. when the user navigates away.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

func (s *Store) lookup(sessionID string) (*entry, error) {
	e, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrNoSelection
	}
	e.lastSeen = s.now()
	return e, nil
}

// prune drops idle entries. Caller holds the lock.
func (s *Store) prune() {
	cutoff := s.now().Add(-s.maxIdle)
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) && !e.state.IsResolving {
			delete(s.entries, id)
		}
	}
}
