package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and single-process hosts.
// Records are deep-copied on the way in and out so callers cannot mutate
// stored state without going through Save.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]*Session{}}
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	clone, err := cloneSession(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = clone
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return cloneSession(stored)
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	clone, err := cloneSession(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sess.ID)
	}
	s.sessions[sess.ID] = clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

func cloneSession(sess *Session) (*Session, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session store: encode %s: %w", sess.ID, err)
	}
	clone := &Session{}
	if err := json.Unmarshal(raw, clone); err != nil {
		return nil, fmt.Errorf("session store: decode %s: %w", sess.ID, err)
	}
	return normalizeSession(clone), nil
}

var _ Store = (*MemoryStore)(nil)
