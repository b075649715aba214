package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"readquest/internal/model"
)

const (
	// XPPerPage is the xp granted for every page read in a session.
	XPPerPage = 5

	// ManaPerPage is the mana granted for every page read in a session.
	ManaPerPage = 2

	// FocusThreshold is the page count a session must exceed to earn focus.
	FocusThreshold = 10

	// MaxPagesPerSession keeps page rewards inside int range.
	MaxPagesPerSession = math.MaxInt / XPPerPage
)

// Report is what the reader submits at the end of a session.
type Report struct {
	PagesRead      int
	ElapsedSeconds int
	Note           string
}

func (r Report) validate() error {
	if r.PagesRead < 0 {
		return model.InputError{Field: "pagesRead", Reason: fmt.Sprintf("%d is negative", r.PagesRead)}
	}
	if r.PagesRead > MaxPagesPerSession {
		return model.InputError{Field: "pagesRead", Reason: fmt.Sprintf("%d is more than %d", r.PagesRead, MaxPagesPerSession)}
	}
	if r.ElapsedSeconds < 0 {
		return model.InputError{Field: "elapsedSeconds", Reason: fmt.Sprintf("%d is negative", r.ElapsedSeconds)}
	}
	return nil
}

// StatDelta is the additive change a session makes to the hero. It never
// carries negative values.
type StatDelta struct {
	XP         int
	Mana       int
	Attributes model.Attributes
	BooksRead  int
	Hours      float64
}

// Apply adds the delta to stats and returns the result.
func (d StatDelta) Apply(s model.HeroStats) model.HeroStats {
	s.XP += d.XP
	s.Mana += d.Mana
	s.BooksRead += d.BooksRead
	s.TotalTimeHours += d.Hours
	s.Attributes.Focus += d.Attributes.Focus
	s.Attributes.Comprehension += d.Attributes.Comprehension
	s.Attributes.Discipline += d.Attributes.Discipline
	s.Attributes.Exploration += d.Attributes.Exploration
	return s
}

// CompleteSession maps a finished reading session onto the book and returns
// the reward delta. It is pure: nothing is persisted here.
func CompleteSession(book model.Book, r Report, now time.Time) (model.Book, StatDelta, error) {
	if err := r.validate(); err != nil {
		return book, StatDelta{}, err
	}
	if book.Status == model.StatusCompleted || model.IsBookComplete(book) {
		return book, StatDelta{}, fmt.Errorf("%w: %q", model.ErrAlreadyComplete, book.Title)
	}

	updated := book
	if r.PagesRead >= book.TotalPages-book.CurrentPage {
		updated.CurrentPage = book.TotalPages
	} else {
		updated.CurrentPage = book.CurrentPage + r.PagesRead
	}
	if updated.CurrentPage == book.TotalPages {
		updated.Status = model.StatusCompleted
	} else {
		updated.Status = model.StatusActive
	}
	updated.LastRead = now.UTC()

	delta := StatDelta{
		XP:    r.PagesRead * XPPerPage,
		Mana:  r.PagesRead * ManaPerPage,
		Hours: float64(r.ElapsedSeconds) / 3600,
	}
	delta.Attributes.Discipline = 1
	if r.PagesRead > FocusThreshold {
		delta.Attributes.Focus = 1
	}
	if strings.TrimSpace(r.Note) != "" {
		delta.Attributes.Comprehension = 1
	}
	if updated.Status == model.StatusCompleted {
		delta.BooksRead = 1
	}
	return updated, delta, nil
}

// ExplorationBonus returns 1 when book has just been completed in a genre no
// other completed book shares.
func ExplorationBonus(books []model.Book, book model.Book) int {
	if book.Status != model.StatusCompleted {
		return 0
	}
	for _, b := range books {
		if b.ID == book.ID || b.Status != model.StatusCompleted {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(b.Genre), strings.TrimSpace(book.Genre)) {
			return 0
		}
	}
	return 1
}

// Transition is a session applied to the whole hero state: the updated book,
// the rewards, and the resulting stats and collection.
type Transition struct {
	Book        model.Book
	Delta       StatDelta
	Stats       model.HeroStats
	Books       []model.Book
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ApplySession runs CompleteSession against the book with the given id and
// folds the result into stats and books. The inputs are not modified.
// lastSession is the end of the previous session (zero when there is none).
func ApplySession(stats model.HeroStats, books []model.Book, bookID string, r Report, lastSession, now time.Time, policy LevelPolicy) (*Transition, error) {
	if policy == nil {
		policy = StaticLevel{}
	}
	book, err := model.FindBook(books, bookID)
	if err != nil {
		return nil, err
	}

	updated, delta, err := CompleteSession(book, r, now)
	if err != nil {
		return nil, err
	}

	nextBooks := make([]model.Book, len(books))
	for i := range books {
		if books[i].ID == updated.ID {
			nextBooks[i] = updated
			continue
		}
		nextBooks[i] = books[i]
	}
	delta.Attributes.Exploration = ExplorationBonus(nextBooks, updated)

	if delta.XP > math.MaxInt-stats.XP || delta.Mana > math.MaxInt-stats.Mana {
		return nil, model.InputError{Field: "pagesRead", Reason: fmt.Sprintf("%d pages would overflow the hero's totals", r.PagesRead)}
	}

	levelBefore := stats.Level
	next := delta.Apply(stats)
	next.Streak = NextStreak(stats.Streak, lastSession, now)
	next = policy.Apply(next)

	return &Transition{
		Book:        updated,
		Delta:       delta,
		Stats:       next,
		Books:       nextBooks,
		LevelBefore: levelBefore,
		LevelAfter:  next.Level,
		LevelUp:     next.Level > levelBefore,
	}, nil
}
