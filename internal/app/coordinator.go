// Package app is the single owner of the hero and the book collection. Views
// read state through the Coordinator and route every intent into it; nothing
// else mutates state or talks to the store.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"readquest/internal/assist"
	"readquest/internal/catalog"
	"readquest/internal/engine"
	"readquest/internal/model"
	"readquest/internal/storage"
)

// Options wires the coordinator's collaborators. Zero values are usable.
type Options struct {
	Logger      *log.Logger
	Policy      engine.LevelPolicy
	Catalog     *catalog.Catalog
	Shards      assist.ShardGenerator
	Recognizer  assist.Recognizer
	DisplayName string
	// Degraded marks a store that is already a stand-in for durable storage.
	Degraded    bool
	Location    *time.Location
	Now         func() time.Time
}

// State is a read-only copy of the canonical state.
type State struct {
	Stats model.HeroStats
	Books []model.Book
}

// Coordinator is not safe for concurrent use; callers serialise intents.
type Coordinator struct {
	store    storage.Store
	degraded bool

	stats    model.HeroStats
	books    []model.Book
	sessions []model.Session
	firstRun bool

	view       View
	reading    *ReadingSession
	sessionSeq int

	purchases map[string]PendingPurchase
	resets    map[string]PendingReset

	warnings []string

	logger     *log.Logger
	policy     engine.LevelPolicy
	catalog    *catalog.Catalog
	shards     assist.ShardGenerator
	recognizer assist.Recognizer
	loc        *time.Location
	now        func() time.Time
}

// Open loads the durable state. It never fails: if the store cannot be read
// the coordinator continues on an in-memory store and records a warning.
func Open(ctx context.Context, store storage.Store, opts Options) *Coordinator {
	c := &Coordinator{
		store:      store,
		degraded:   opts.Degraded,
		view:       ViewDashboard,
		purchases:  map[string]PendingPurchase{},
		resets:     map[string]PendingReset{},
		logger:     opts.Logger,
		policy:     opts.Policy,
		catalog:    opts.Catalog,
		shards:     opts.Shards,
		recognizer: opts.Recognizer,
		loc:        opts.Location,
		now:        opts.Now,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	if c.policy == nil {
		c.policy = engine.StaticLevel{}
	}
	if c.catalog == nil {
		c.catalog = catalog.Default()
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.store == nil {
		c.store = storage.NewMemoryStore()
		c.degraded = true
	}

	snap, err := c.store.Load(ctx)
	if err != nil {
		c.warn("could not read saved progress, this session will not be saved: %v", err)
		c.store = storage.NewMemoryStore()
		c.degraded = true
		snap = storage.NewSnapshot()
	}
	for _, key := range snap.Recovered {
		c.warn("saved %s was unreadable and has been reset", key)
	}

	c.stats = snap.Stats
	c.books = snap.Books
	c.firstRun = snap.FirstRun
	if c.firstRun && opts.DisplayName != "" {
		c.stats.DisplayName = opts.DisplayName
	}

	sessions, err := c.store.Sessions(ctx, time.Time{})
	if err != nil {
		c.warn("could not read the reading log: %v", err)
	}
	c.sessions = sessions
	return c
}

// Close releases the store.
func (c *Coordinator) Close() error {
	return c.store.Close()
}

func (c *Coordinator) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Printf("warning: %s", msg)
	c.warnings = append(c.warnings, msg)
}

// Warnings returns the non-fatal notices collected so far.
func (c *Coordinator) Warnings() []string {
	out := make([]string, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Degraded reports whether progress is only being kept in memory.
func (c *Coordinator) Degraded() bool { return c.degraded }

// Onboarding is true until the first hero has been saved.
func (c *Coordinator) Onboarding() bool { return c.firstRun }

// CompleteOnboarding names the hero and saves the first snapshot.
func (c *Coordinator) CompleteOnboarding(ctx context.Context, displayName string) {
	if displayName != "" {
		c.stats.DisplayName = displayName
	}
	c.firstRun = false
	c.persist(ctx, func(s storage.Store) error { return s.Save(ctx, c.snapshot()) })
}

func (c *Coordinator) State() State {
	return State{Stats: c.stats, Books: cloneBooks(c.books)}
}

func (c *Coordinator) Stats() model.HeroStats { return c.stats }

func (c *Coordinator) Books() []model.Book { return cloneBooks(c.books) }

// ActiveBooks returns unfinished quests, most recently added first.
func (c *Coordinator) ActiveBooks() []model.Book {
	return filterBooks(c.books, model.StatusActive)
}

func (c *Coordinator) CompletedBooks() []model.Book {
	return filterBooks(c.books, model.StatusCompleted)
}

func (c *Coordinator) FindBook(ref string) (model.Book, error) {
	return model.FindBook(c.books, ref)
}

// Sessions returns the reading log, oldest first.
func (c *Coordinator) Sessions() []model.Session {
	out := make([]model.Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Badges evaluates every badge against the current state.
func (c *Coordinator) Badges() []model.Badge {
	return c.badgeChecker().Badges()
}

func (c *Coordinator) badgeChecker() *engine.BadgeChecker {
	return engine.NewBadgeChecker(c.stats, c.books, c.sessions).In(c.loc)
}

// ReadingDays returns the days (yyyy-mm-dd, local) with at least one session.
func (c *Coordinator) ReadingDays() map[string]bool {
	ends := make([]time.Time, len(c.sessions))
	for i, s := range c.sessions {
		ends[i] = s.EndedAt
	}
	return engine.ReadingDays(ends, c.loc)
}

// Location is the zone used for days and time-of-day badges.
func (c *Coordinator) Location() *time.Location { return c.loc }

// AddBook validates the draft and puts the new quest at the top of the list.
func (c *Coordinator) AddBook(ctx context.Context, draft model.BookDraft) (model.Book, error) {
	book, err := draft.Build(c.now())
	if err != nil {
		return model.Book{}, err
	}
	c.books = append([]model.Book{book}, c.books...)
	c.firstRun = false
	c.persist(ctx, func(s storage.Store) error { return s.Save(ctx, c.snapshot()) })
	if c.view == ViewAddQuest {
		c.view = ViewDashboard
	}
	return book, nil
}

// StartCoverScan begins a background cover recognition for the add-quest
// form. The caller merges or cancels the returned task.
func (c *Coordinator) StartCoverScan(ctx context.Context, image []byte) *assist.Enrichment {
	return assist.StartEnrichment(ctx, c.recognizer, image)
}

// ShardGenerator returns the configured generator, or nil.
func (c *Coordinator) ShardGenerator() assist.ShardGenerator { return c.shards }

func (c *Coordinator) snapshot() storage.Snapshot {
	return storage.Snapshot{Stats: c.stats, Books: cloneBooks(c.books)}
}

// persist runs a write against the store. If the store fails the state is
// kept and the coordinator switches to an in-memory store for the rest of the
// process.
func (c *Coordinator) persist(ctx context.Context, write func(storage.Store) error) {
	err := write(c.store)
	if err == nil {
		return
	}
	if c.degraded {
		c.logger.Printf("warning: in-memory write failed: %v", err)
		return
	}
	c.degrade(err)
	if err := write(c.store); err != nil {
		c.logger.Printf("warning: in-memory write failed: %v", err)
	}
}

func (c *Coordinator) degrade(cause error) {
	if !errors.Is(cause, model.ErrPersistenceUnavailable) {
		cause = fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, cause)
	}
	c.warn("progress can no longer be saved and will be lost on exit: %v", cause)
	old := c.store
	c.store = storage.NewMemoryStoreFrom(c.snapshot(), c.sessions)
	c.degraded = true
	if err := old.Close(); err != nil {
		c.logger.Printf("warning: close store: %v", err)
	}
}

func cloneBooks(books []model.Book) []model.Book {
	out := make([]model.Book, len(books))
	copy(out, books)
	return out
}

func filterBooks(books []model.Book, status model.Status) []model.Book {
	var out []model.Book
	for _, b := range books {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
