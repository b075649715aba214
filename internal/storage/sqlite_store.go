package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"readquest/internal/model"
)

// SQLiteStore keeps the hero and the book collection as two JSON values in a
// kv table, next to an append-only reading session log.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLiteStore opens the database at path. A nil logger discards warnings.
func OpenSQLiteStore(ctx context.Context, path string, logger *log.Logger) (*SQLiteStore, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	return NewSQLiteStore(db, logger), nil
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB, logger *log.Logger) *SQLiteStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	snap := NewSnapshot()

	rawStats, ok, err := getValue(ctx, s.db, KeyStats)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	if ok {
		stats, err := decodeStats(rawStats)
		if err != nil {
			s.logger.Printf("warning: %s unreadable, starting fresh: %v", KeyStats, err)
			snap.Recovered = append(snap.Recovered, KeyStats)
		} else {
			snap.Stats = stats
			snap.FirstRun = false
		}
	}

	rawBooks, ok, err := getValue(ctx, s.db, KeyBooks)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	if ok {
		books, err := decodeBooks(rawBooks)
		if err != nil {
			s.logger.Printf("warning: %s unreadable, starting with no books: %v", KeyBooks, err)
			snap.Recovered = append(snap.Recovered, KeyBooks)
		} else {
			snap.Books = books
		}
	}
	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	return s.write(ctx, snap, nil)
}

func (s *SQLiteStore) RecordSession(ctx context.Context, snap Snapshot, sess model.Session) (model.Session, error) {
	err := s.write(ctx, snap, func(tx *sql.Tx) error {
		id, err := insertSession(ctx, tx, sess)
		if err != nil {
			return err
		}
		sess.ID = id
		return nil
	})
	if err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

func (s *SQLiteStore) write(ctx context.Context, snap Snapshot, extra func(tx *sql.Tx) error) error {
	stats, books, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	err = WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := putValue(ctx, tx, KeyStats, stats); err != nil {
			return err
		}
		if err := putValue(ctx, tx, KeyBooks, books); err != nil {
			return err
		}
		if extra != nil {
			return extra(tx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) Sessions(ctx context.Context, since time.Time) ([]model.Session, error) {
	out, err := listSessions(ctx, s.db, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	return out, nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, KeyStats, KeyBooks); err != nil {
			return fmt.Errorf("reset kv: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reading_sessions`); err != nil {
			return fmt.Errorf("reset sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
