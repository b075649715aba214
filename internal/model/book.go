package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// DefaultGenre is used when a quest is added without a genre.
const DefaultGenre = "General"

// ValidateNewBook checks the two fields quest creation cannot proceed without.
func ValidateNewBook(title string, pages int) error {
	if strings.TrimSpace(title) == "" {
		return ErrMissingTitle
	}
	if pages <= 0 {
		return ErrInvalidPageCount
	}
	return nil
}

// IsBookComplete reports whether every page of the book has been read.
func IsBookComplete(b Book) bool {
	return b.CurrentPage >= b.TotalPages
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NewBook creates an active quest with a fresh id.
func NewBook(title, author, genre string, pages int, now time.Time) (Book, error) {
	if err := ValidateNewBook(title, pages); err != nil {
		return Book{}, err
	}
	genre = normalizeText(genre)
	if genre == "" {
		genre = DefaultGenre
	}
	return Book{
		ID:          uuid.NewString(),
		Title:       normalizeText(title),
		Author:      normalizeText(author),
		TotalPages:  pages,
		CurrentPage: 0,
		Genre:       genre,
		Status:      StatusActive,
		LastRead:    now.UTC(),
	}, nil
}

// Validate checks the page and status invariants of a stored book.
func (b Book) Validate() error {
	if b.ID == "" {
		return InputError{Field: "id", Reason: "empty"}
	}
	if err := ValidateNewBook(b.Title, b.TotalPages); err != nil {
		return err
	}
	if b.CurrentPage < 0 || b.CurrentPage > b.TotalPages {
		return InputError{Field: "currentPage", Reason: fmt.Sprintf("%d outside [0,%d]", b.CurrentPage, b.TotalPages)}
	}
	if !b.Status.IsValid() {
		return InputError{Field: "status", Reason: fmt.Sprintf("unknown status %q", b.Status)}
	}
	if (b.Status == StatusCompleted) != (b.CurrentPage == b.TotalPages) {
		return InputError{Field: "status", Reason: fmt.Sprintf("%s at page %d/%d", b.Status, b.CurrentPage, b.TotalPages)}
	}
	return nil
}

// Percent is the completion percentage in [0,100]. Never stored.
func (b Book) Percent() int {
	if b.TotalPages <= 0 {
		return 0
	}
	p := b.CurrentPage * 100 / b.TotalPages
	if p > 100 {
		return 100
	}
	return p
}

func (b Book) PagesLeft() int {
	left := b.TotalPages - b.CurrentPage
	if left < 0 {
		return 0
	}
	return left
}

// FindBook looks a book up by exact id, then by unique id prefix.
func FindBook(books []Book, ref string) (Book, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Book{}, ErrBookNotFound
	}
	var match *Book
	for i := range books {
		if books[i].ID == ref {
			return books[i], nil
		}
		if strings.HasPrefix(books[i].ID, ref) {
			if match != nil {
				return Book{}, fmt.Errorf("%w: %q is ambiguous", ErrBookNotFound, ref)
			}
			match = &books[i]
		}
	}
	if match == nil {
		return Book{}, fmt.Errorf("%w: %q", ErrBookNotFound, ref)
	}
	return *match, nil
}
