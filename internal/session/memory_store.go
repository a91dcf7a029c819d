package session

import (
	"context"
	"sync"

	sessionerrors "go-presence/internal/session/errors"
)

// MemoryStore keeps sessions in process memory; they are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	locks    map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		locks:    make(map[string]struct{}),
	}
}

func key(userID, day string) string {
	return userID + ":" + day
}

func (m *MemoryStore) Get(ctx context.Context, userID, day string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[key(userID, day)]; ok {
		return s, nil
	}
	return New(userID, day), nil
}

func (m *MemoryStore) Put(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.Photo = nil
	m.sessions[key(s.UserID, s.Day)] = s
	return nil
}

func (m *MemoryStore) Reset(ctx context.Context, userID, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key(userID, day))
	return nil
}

func (m *MemoryStore) Lock(ctx context.Context, userID string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.locks[userID]; held {
		return nil, sessionerrors.ErrWorkflowInProgress
	}
	m.locks[userID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.locks, userID)
			m.mu.Unlock()
		})
	}, nil
}
