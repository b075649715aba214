package model

import "time"

// DraftField identifies a user-editable field of the add-quest form.
type DraftField string

const (
	FieldTitle  DraftField = "title"
	FieldAuthor DraftField = "author"
	FieldPages  DraftField = "pages"
	FieldGenre  DraftField = "genre"
)

// BookDraft is the add-quest form state. It remembers which fields the user
// has touched so that late enrichment never overwrites them.
type BookDraft struct {
	Title  string
	Author string
	Pages  int
	Genre  string

	edited map[DraftField]bool
}

func (d *BookDraft) mark(f DraftField) {
	if d.edited == nil {
		d.edited = map[DraftField]bool{}
	}
	d.edited[f] = true
}

func (d *BookDraft) SetTitle(v string)  { d.Title = v; d.mark(FieldTitle) }
func (d *BookDraft) SetAuthor(v string) { d.Author = v; d.mark(FieldAuthor) }
func (d *BookDraft) SetPages(v int)     { d.Pages = v; d.mark(FieldPages) }
func (d *BookDraft) SetGenre(v string)  { d.Genre = v; d.mark(FieldGenre) }

// Edited reports whether the user has set the field.
func (d BookDraft) Edited(f DraftField) bool {
	return d.edited[f]
}

// Suggest fills a field from a best-effort source unless the user already
// edited it or the suggestion is empty. It returns whether the field changed.
func (d *BookDraft) SuggestTitle(v string) bool {
	if d.Edited(FieldTitle) || v == "" {
		return false
	}
	d.Title = v
	return true
}

func (d *BookDraft) SuggestAuthor(v string) bool {
	if d.Edited(FieldAuthor) || v == "" {
		return false
	}
	d.Author = v
	return true
}

func (d *BookDraft) SuggestPages(v int) bool {
	if d.Edited(FieldPages) || v <= 0 {
		return false
	}
	d.Pages = v
	return true
}

// Build validates the draft and turns it into a new active book.
func (d BookDraft) Build(now time.Time) (Book, error) {
	return NewBook(d.Title, d.Author, d.Genre, d.Pages, now)
}
