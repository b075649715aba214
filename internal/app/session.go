package app

import (
	"context"
	"fmt"
	"time"

	"readquest/internal/assist"
	"readquest/internal/engine"
	"readquest/internal/model"
	"readquest/internal/storage"
)

// ErrNoSession is returned when a reading intent arrives with no session
// in progress.
var ErrNoSession = fmt.Errorf("%w: no reading session in progress", model.ErrInvalidInput)

// ReadingSession is a running timer on one book. Elapsed time is always the
// wall-clock difference from Start, minus paused spans, so it stays correct
// across process suspension.
type ReadingSession struct {
	// Seq tells apart sessions started in the same process, even on the same
	// book at the same instant.
	Seq      int
	BookID   string
	Start    time.Time
	pausedAt time.Time
	paused   time.Duration
}

// Elapsed is the reading time up to now.
func (r ReadingSession) Elapsed(now time.Time) time.Duration {
	d := now.Sub(r.Start) - r.paused
	if !r.pausedAt.IsZero() {
		d -= now.Sub(r.pausedAt)
	}
	if d < 0 {
		return 0
	}
	return d
}

func (r ReadingSession) Paused() bool { return !r.pausedAt.IsZero() }

// Outcome describes a completed session for the views.
type Outcome struct {
	Book      model.Book
	Delta     engine.StatDelta
	Stats     model.HeroStats
	Session   model.Session
	LevelUp   bool
	NewBadges []model.Badge
}

// StartSession opens the reading screen for a book and starts its timer.
func (c *Coordinator) StartSession(bookRef string, now time.Time) (model.Book, error) {
	book, err := model.FindBook(c.books, bookRef)
	if err != nil {
		return model.Book{}, err
	}
	if book.Status == model.StatusCompleted {
		return model.Book{}, fmt.Errorf("%w: %q", model.ErrAlreadyComplete, book.Title)
	}
	c.sessionSeq++
	c.reading = &ReadingSession{Seq: c.sessionSeq, BookID: book.ID, Start: now}
	c.view = ViewReading
	return book, nil
}

// Reading returns the running session, if any.
func (c *Coordinator) Reading() (ReadingSession, bool) {
	if c.reading == nil {
		return ReadingSession{}, false
	}
	return *c.reading, true
}

// Elapsed is the running session's reading time, or 0.
func (c *Coordinator) Elapsed(now time.Time) time.Duration {
	if c.reading == nil {
		return 0
	}
	return c.reading.Elapsed(now)
}

// TogglePause pauses or resumes the running session's timer.
func (c *Coordinator) TogglePause(now time.Time) error {
	if c.reading == nil {
		return ErrNoSession
	}
	if c.reading.pausedAt.IsZero() {
		c.reading.pausedAt = now
		return nil
	}
	c.reading.paused += now.Sub(c.reading.pausedAt)
	c.reading.pausedAt = time.Time{}
	return nil
}

// CancelSession drops the running session without recording anything.
func (c *Coordinator) CancelSession() {
	c.reading = nil
	if c.view == ViewReading {
		c.view = ViewDashboard
	}
}

// CompleteSession ends the running session with the reader's report.
func (c *Coordinator) CompleteSession(ctx context.Context, pagesRead int, note string, now time.Time) (*Outcome, error) {
	if c.reading == nil {
		return nil, ErrNoSession
	}
	elapsed := int(c.reading.Elapsed(now) / time.Second)
	out, err := c.LogSession(ctx, c.reading.BookID, engine.Report{PagesRead: pagesRead, ElapsedSeconds: elapsed, Note: note}, now)
	if err != nil {
		return nil, err
	}
	c.reading = nil
	c.view = ViewDashboard
	return out, nil
}

// LogSession records a finished session on a book without a running timer.
// The book, stats and log entry are saved in one write.
func (c *Coordinator) LogSession(ctx context.Context, bookRef string, r engine.Report, now time.Time) (*Outcome, error) {
	var last time.Time
	if n := len(c.sessions); n > 0 {
		last = c.sessions[n-1].EndedAt
	}
	tr, err := engine.ApplySession(c.stats, c.books, bookRef, r, last, now.In(c.loc), c.policy)
	if err != nil {
		return nil, err
	}

	before := c.badgeChecker().Badges()
	c.stats = tr.Stats
	c.books = tr.Books
	c.firstRun = false

	sess := model.Session{
		BookID:         tr.Book.ID,
		PagesRead:      r.PagesRead,
		ElapsedSeconds: r.ElapsedSeconds,
		Note:           r.Note,
		XPGained:       tr.Delta.XP,
		ManaGained:     tr.Delta.Mana,
		EndedAt:        now.UTC(),
	}
	recorded := sess
	c.persist(ctx, func(s storage.Store) error {
		saved, err := s.RecordSession(ctx, c.snapshot(), sess)
		if err != nil {
			return err
		}
		recorded = saved
		return nil
	})
	c.sessions = append(c.sessions, recorded)

	if tr.LevelUp {
		c.logger.Printf("level up: %d -> %d", tr.LevelBefore, tr.LevelAfter)
	}
	return &Outcome{
		Book:      tr.Book,
		Delta:     tr.Delta,
		Stats:     tr.Stats,
		Session:   recorded,
		LevelUp:   tr.LevelUp,
		NewBadges: engine.NewlyUnlocked(before, c.badgeChecker().Badges()),
	}, nil
}

// MemoryShard returns a quote for the book. It never fails; a fallback is
// used when the generator is missing or errors.
func (c *Coordinator) MemoryShard(ctx context.Context, bookRef string) string {
	title := ""
	if b, err := model.FindBook(c.books, bookRef); err == nil {
		title = b.Title
	}
	shard, fellBack := assist.MemoryShard(ctx, c.shards, title)
	if fellBack && c.shards != nil {
		c.logger.Printf("memory shard: generator unavailable, using fallback")
	}
	return shard
}

