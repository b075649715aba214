package assist

import (
	"context"
	"sync"

	"readquest/internal/model"
)

// Enrichment is a cover scan running in the background while the user fills
// in the add-quest form. Its result is merged only if it arrives before the
// form is submitted; Cancel discards it.
type Enrichment struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	result    Recognition
	notice    string
	discarded bool
}

// StartEnrichment launches RecognizeCover on its own goroutine.
func StartEnrichment(ctx context.Context, rec Recognizer, image []byte) *Enrichment {
	ctx, cancel := context.WithCancel(ctx)
	e := &Enrichment{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(e.done)
		r, notice := RecognizeCover(ctx, rec, image)
		e.mu.Lock()
		e.result, e.notice = r, notice
		e.mu.Unlock()
	}()
	return e
}

// Done is closed when the scan has finished (or was cancelled).
func (e *Enrichment) Done() <-chan struct{} { return e.done }

// Cancel stops the scan and discards any result.
func (e *Enrichment) Cancel() {
	e.mu.Lock()
	e.discarded = true
	e.mu.Unlock()
	e.cancel()
}

// Wait blocks until the scan finishes or ctx ends. It reports whether a
// result is ready to merge.
func (e *Enrichment) Wait(ctx context.Context) bool {
	select {
	case <-e.done:
	case <-ctx.Done():
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.discarded
}

// MergeInto applies a finished, non-discarded result to d. It is a no-op
// while the scan is still running. The notice is "" when nothing went wrong.
func (e *Enrichment) MergeInto(d *model.BookDraft) (filled []model.DraftField, notice string) {
	select {
	case <-e.done:
	default:
		return nil, ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.discarded {
		return nil, ""
	}
	return Merge(d, e.result), e.notice
}
