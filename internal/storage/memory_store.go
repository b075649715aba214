package storage

import (
	"context"
	"sync"
	"time"

	"readquest/internal/model"
)

// MemoryStore is an in-process Store. It backs the degraded mode when the
// database cannot be used, and tests.
type MemoryStore struct {
	mu       sync.Mutex
	saved    bool
	stats    model.HeroStats
	books    []model.Book
	sessions []model.Session
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFrom seeds the store with snap, as if it had been saved.
func NewMemoryStoreFrom(snap Snapshot, sessions []model.Session) *MemoryStore {
	m := &MemoryStore{}
	m.put(snap)
	for _, s := range sessions {
		m.append(s)
	}
	return m
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return NewSnapshot(), nil
	}
	return Snapshot{Stats: m.stats, Books: cloneBooks(m.books)}, nil
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(snap)
	return nil
}

func (m *MemoryStore) RecordSession(_ context.Context, snap Snapshot, s model.Session) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(snap)
	return m.append(s), nil
}

func (m *MemoryStore) Sessions(_ context.Context, since time.Time) ([]model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Session
	for _, s := range m.sessions {
		if !s.EndedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = false
	m.stats = model.HeroStats{}
	m.books = nil
	m.sessions = nil
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) put(snap Snapshot) {
	m.saved = true
	m.stats = snap.Stats
	m.books = cloneBooks(snap.Books)
}

func (m *MemoryStore) append(s model.Session) model.Session {
	m.nextID++
	s.ID = m.nextID
	s.EndedAt = s.EndedAt.UTC()
	m.sessions = append(m.sessions, s)
	return s
}
