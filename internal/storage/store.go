package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"readquest/internal/model"
)

// Snapshot is the whole durable state: the hero and the book collection.
type Snapshot struct {
	Stats model.HeroStats
	Books []model.Book

	// FirstRun is set when no hero was saved before (or it could not be read).
	FirstRun bool

	// Recovered lists records that were unreadable and replaced by defaults.
	Recovered []string
}

// NewSnapshot returns the first-run state.
func NewSnapshot() Snapshot {
	return Snapshot{Stats: model.DefaultStats(), Books: []model.Book{}, FirstRun: true}
}

// Store persists snapshots and the reading session log. Writes are atomic:
// stats and books are never stored from different snapshots.
type Store interface {
	// Load never fails on missing or malformed data; it falls back to
	// defaults and reports the recovery in Snapshot.Recovered.
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	// RecordSession saves snap and appends s to the log in one write.
	RecordSession(ctx context.Context, snap Snapshot, s model.Session) (model.Session, error)
	// Sessions returns sessions that ended at or after since, oldest first.
	Sessions(ctx context.Context, since time.Time) ([]model.Session, error)
	Reset(ctx context.Context) error
	Close() error
}

func encodeSnapshot(snap Snapshot) (stats, books string, err error) {
	list := snap.Books
	if list == nil {
		list = []model.Book{}
	}
	s, err := json.Marshal(snap.Stats)
	if err != nil {
		return "", "", fmt.Errorf("encode %s: %w", KeyStats, err)
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", "", fmt.Errorf("encode %s: %w", KeyBooks, err)
	}
	return string(s), string(b), nil
}

func decodeStats(raw string) (model.HeroStats, error) {
	var s model.HeroStats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.HeroStats{}, err
	}
	if err := s.Validate(); err != nil {
		return model.HeroStats{}, err
	}
	return s, nil
}

func decodeBooks(raw string) ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		return nil, err
	}
	for i, b := range books {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
	}
	if books == nil {
		books = []model.Book{}
	}
	return books, nil
}

func cloneBooks(books []model.Book) []model.Book {
	out := make([]model.Book, len(books))
	copy(out, books)
	return out
}
