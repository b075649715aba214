package model

import (
	"errors"
	"testing"
	"time"
)

func TestValidateNewBook(t *testing.T) {
	tests := []struct {
		name  string
		title string
		pages int
		want  error
	}{
		{"ok", "Dune", 600, nil},
		{"blank title", "   ", 600, ErrMissingTitle},
		{"zero pages", "Dune", 0, ErrInvalidPageCount},
		{"negative pages", "Dune", -3, ErrInvalidPageCount},
		{"title checked first", "", 0, ErrMissingTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewBook(tt.title, tt.pages)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateNewBook(%q,%d)=%v, want %v", tt.title, tt.pages, err, tt.want)
			}
			if tt.want != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected %v to be an invalid input error", err)
			}
		})
	}
}

func TestNewBookDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	b, err := NewBook("  人類大歷史 ", "Yuval Noah Harari", "", 443, now)
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("expected id")
	}
	if b.Title != "人類大歷史" {
		t.Fatalf("title=%q, want trimmed", b.Title)
	}
	if b.Genre != DefaultGenre {
		t.Fatalf("genre=%q, want %q", b.Genre, DefaultGenre)
	}
	if b.Status != StatusActive || b.CurrentPage != 0 {
		t.Fatalf("unexpected initial state %+v", b)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("new book invalid: %v", err)
	}

	other, _ := NewBook("Dune", "", "", 10, now)
	if other.ID == b.ID {
		t.Fatalf("expected unique ids")
	}
}

func TestNewBookNormalizesToNFC(t *testing.T) {
	// "e" + combining acute accent
	b, err := NewBook("Cafe\u0301", "", "", 1, time.Now())
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	if b.Title != "Caf\u00e9" {
		t.Fatalf("title=%q, want NFC form", b.Title)
	}
}

func TestIsBookComplete(t *testing.T) {
	if IsBookComplete(Book{TotalPages: 300, CurrentPage: 299}) {
		t.Fatalf("299/300 should not be complete")
	}
	if !IsBookComplete(Book{TotalPages: 300, CurrentPage: 300}) {
		t.Fatalf("300/300 should be complete")
	}
}

func TestBookValidateStatusConsistency(t *testing.T) {
	b := Book{ID: "x", Title: "Dune", TotalPages: 600, CurrentPage: 600, Status: StatusActive}
	if err := b.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
	b.Status = StatusCompleted
	if err := b.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.CurrentPage = 601
	if err := b.Validate(); err == nil {
		t.Fatalf("expected page overflow error")
	}
}

func TestDerivedValues(t *testing.T) {
	b := Book{TotalPages: 300, CurrentPage: 42}
	if got := b.Percent(); got != 14 {
		t.Fatalf("Percent=%d, want 14", got)
	}
	if got := b.PagesLeft(); got != 258 {
		t.Fatalf("PagesLeft=%d, want 258", got)
	}
	s := HeroStats{XP: 750, MaxXP: 1000}
	if got := s.XPPercent(); got != 75 {
		t.Fatalf("XPPercent=%d, want 75", got)
	}
	if got := FormatDuration(65); got != "01:05" {
		t.Fatalf("FormatDuration(65)=%q", got)
	}
	if got := FormatDuration(3725); got != "1:02:05" {
		t.Fatalf("FormatDuration(3725)=%q", got)
	}
}

func TestDefaultStatsValid(t *testing.T) {
	s := DefaultStats()
	if s.Level != 1 || s.XP != 0 || s.Mana != 0 {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	s.Mana = -1
	if err := s.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative mana should be invalid, got %v", err)
	}
}

func TestFindBook(t *testing.T) {
	books := []Book{{ID: "abc123"}, {ID: "abd456"}}
	if b, err := FindBook(books, "abc"); err != nil || b.ID != "abc123" {
		t.Fatalf("prefix lookup: %v %+v", err, b)
	}
	if _, err := FindBook(books, "ab"); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("ambiguous prefix should fail, got %v", err)
	}
	if _, err := FindBook(books, "zzz"); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("missing book should fail, got %v", err)
	}
}

func TestDraftSuggestionsRespectEdits(t *testing.T) {
	var d BookDraft
	d.SetTitle("My Title")
	if d.SuggestTitle("Recognized") {
		t.Fatalf("edited title must not be overwritten")
	}
	if !d.SuggestAuthor("Frank Herbert") || d.Author != "Frank Herbert" {
		t.Fatalf("untouched author should take suggestion")
	}
	if d.SuggestPages(0) {
		t.Fatalf("empty page suggestion must be ignored")
	}
	if !d.SuggestPages(412) || d.Pages != 412 {
		t.Fatalf("pages should take suggestion")
	}
	b, err := d.Build(time.Now())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if b.Title != "My Title" || b.TotalPages != 412 {
		t.Fatalf("unexpected book %+v", b)
	}
}
