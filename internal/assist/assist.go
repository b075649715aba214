// Package assist wraps the two best-effort collaborators: cover recognition
// for the add-quest form and memory shard generation for reading sessions.
// Neither may block or fail the primary flow; callers always get a usable
// value back.
package assist

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"

	"readquest/internal/model"
)

// Recognition is what a cover scan could read. Zero fields are unknown.
type Recognition struct {
	Title      string
	Author     string
	TotalPages int
}

func (r Recognition) IsEmpty() bool {
	return r.Title == "" && r.Author == "" && r.TotalPages <= 0
}

// Recognizer extracts book metadata from a cover photo.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, mime string) (Recognition, error)
}

// ShardGenerator writes a short quote inspired by a book title.
type ShardGenerator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// FallbackShards are shown when no generator is configured or it fails.
var FallbackShards = []string{
	"Knowledge is the greatest weapon in any adventurer's arsenal.",
	"The path to wisdom is paved with the pages of the past.",
	"Every page turned is a step deeper into the dungeon of the mind.",
	"A quiet hour with a book outlasts a day of idle wandering.",
	"The scribe who reads by lantern light sees farther than the king.",
}

// FallbackShard picks a fallback deterministically from the title.
func FallbackShard(title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return FallbackShards[int(h.Sum32()%uint32(len(FallbackShards)))]
}

// ErrNoCollaborator is returned when a collaborator is not configured.
var ErrNoCollaborator = fmt.Errorf("%w: not configured", model.ErrCollaboratorUnavailable)

// MemoryShard asks gen for a shard and never fails: on any error, blank answer
// or nil generator it returns a fallback. fellBack reports which one it was.
func MemoryShard(ctx context.Context, gen ShardGenerator, title string) (shard string, fellBack bool) {
	if gen == nil {
		return FallbackShard(title), true
	}
	text, err := gen.Generate(ctx, title)
	if err != nil {
		return FallbackShard(title), true
	}
	text = cleanShard(text)
	if text == "" {
		return FallbackShard(title), true
	}
	return text, false
}

func cleanShard(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"“”'")
	return strings.TrimSpace(s)
}

// RecognizeCover runs rec over image and never fails. When nothing could be
// read the recognition is empty and notice explains why; the form stays
// usable with manual input.
func RecognizeCover(ctx context.Context, rec Recognizer, image []byte) (Recognition, string) {
	if rec == nil {
		return Recognition{}, "cover scan unavailable: no recognizer configured, fill the fields manually"
	}
	if len(image) == 0 {
		return Recognition{}, "cover scan skipped: the image is empty"
	}
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		return Recognition{}, fmt.Sprintf("cover scan skipped: %s is not an image", mime)
	}

	r, err := rec.Recognize(ctx, image, mime)
	switch {
	case errors.Is(err, context.Canceled):
		return Recognition{}, "cover scan cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return Recognition{}, "cover scan timed out, fill the fields manually"
	case err != nil:
		return Recognition{}, "cover scan failed, fill the fields manually"
	case r.IsEmpty():
		return Recognition{}, "cover scan found nothing readable"
	}
	return r, ""
}

// Merge copies the recognised values into the draft for fields the user has
// not edited. It returns the fields it filled.
func Merge(d *model.BookDraft, r Recognition) []model.DraftField {
	var filled []model.DraftField
	if d.SuggestTitle(strings.TrimSpace(r.Title)) {
		filled = append(filled, model.FieldTitle)
	}
	if d.SuggestAuthor(strings.TrimSpace(r.Author)) {
		filled = append(filled, model.FieldAuthor)
	}
	if d.SuggestPages(r.TotalPages) {
		filled = append(filled, model.FieldPages)
	}
	return filled
}
