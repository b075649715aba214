package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"readquest/internal/model"
)

// sessionTimeLayout is fixed width so ended_at sorts lexically.
const sessionTimeLayout = "2006-01-02T15:04:05.000000000Z"

func insertSession(ctx context.Context, tx *sql.Tx, s model.Session) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO reading_sessions (book_id, pages_read, elapsed_seconds, xp_gained, mana_gained, note, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.BookID, s.PagesRead, s.ElapsedSeconds, s.XPGained, s.ManaGained, s.Note, s.EndedAt.UTC().Format(sessionTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("session insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session last insert id: %w", err)
	}
	return id, nil
}

// listSessions returns sessions that ended at or after since, oldest first.
// A zero since returns the full log.
func listSessions(ctx context.Context, db *sql.DB, since time.Time) ([]model.Session, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, book_id, pages_read, elapsed_seconds, xp_gained, mana_gained, note, ended_at
		FROM reading_sessions
		WHERE ended_at >= ?
		ORDER BY ended_at ASC, id ASC
	`, since.UTC().Format(sessionTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("session list: %w", err)
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		var (
			s     model.Session
			ended string
		)
		if err := rows.Scan(&s.ID, &s.BookID, &s.PagesRead, &s.ElapsedSeconds, &s.XPGained, &s.ManaGained, &s.Note, &ended); err != nil {
			return nil, fmt.Errorf("session scan: %w", err)
		}
		t, err := time.Parse(sessionTimeLayout, ended)
		if err != nil {
			return nil, fmt.Errorf("session %d ended_at: %w", s.ID, err)
		}
		s.EndedAt = t
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows: %w", err)
	}
	return out, nil
}
