package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readquest/internal/assist"
	"readquest/internal/engine"
	"readquest/internal/model"
	"readquest/internal/storage"
)

var t0 = time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)

func openTest(t *testing.T, store storage.Store) *Coordinator {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	c := Open(context.Background(), store, Options{Location: time.UTC, Now: func() time.Time { return t0 }})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func addBook(t *testing.T, c *Coordinator, title string, pages int) model.Book {
	t.Helper()
	var d model.BookDraft
	d.SetTitle(title)
	d.SetPages(pages)
	b, err := c.AddBook(context.Background(), d)
	require.NoError(t, err)
	return b
}

// failingStore loads fine but refuses every write.
type failingStore struct {
	storage.MemoryStore
	closed bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) Save(context.Context, storage.Snapshot) error { return errDiskFull }
func (f *failingStore) RecordSession(context.Context, storage.Snapshot, model.Session) (model.Session, error) {
	return model.Session{}, errDiskFull
}
func (f *failingStore) Reset(context.Context) error { return errDiskFull }
func (f *failingStore) Close() error                { f.closed = true; return nil }

type brokenStore struct{ failingStore }

func (b *brokenStore) Load(context.Context) (storage.Snapshot, error) {
	return storage.Snapshot{}, errors.New("unable to open database file")
}

func TestOpenFirstRun(t *testing.T) {
	c := openTest(t, nil)
	assert.True(t, c.Onboarding())
	assert.Equal(t, ViewDashboard, c.View())
	assert.Equal(t, model.DefaultStats(), c.Stats())
	assert.Empty(t, c.Books())
	assert.Empty(t, c.Warnings())

	c.CompleteOnboarding(context.Background(), "Ayla")
	assert.False(t, c.Onboarding())
	assert.Equal(t, "Ayla", c.Stats().DisplayName)
}

func TestAddBookPrependsAndPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	c := openTest(t, store)

	first := addBook(t, c, "Dune", 612)
	second := addBook(t, c, "三体", 400)

	books := c.Books()
	require.Len(t, books, 2)
	assert.Equal(t, second.ID, books[0].ID)
	assert.Equal(t, first.ID, books[1].ID)
	assert.Equal(t, model.DefaultGenre, books[0].Genre)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, books, snap.Books)
}

func TestAddBookRejectsInvalidDraft(t *testing.T) {
	c := openTest(t, nil)

	var d model.BookDraft
	d.SetPages(100)
	_, err := c.AddBook(context.Background(), d)
	assert.ErrorIs(t, err, model.ErrMissingTitle)

	d.SetTitle("Dune")
	d.SetPages(0)
	_, err = c.AddBook(context.Background(), d)
	assert.ErrorIs(t, err, model.ErrInvalidPageCount)
	assert.Empty(t, c.Books())
}

func TestReadingSessionFlow(t *testing.T) {
	store := storage.NewMemoryStore()
	c := openTest(t, store)
	book := addBook(t, c, "Dune", 300)
	ctx := context.Background()

	require.ErrorIs(t, c.Navigate(ViewReading), ErrNoSession)

	_, err := c.StartSession(book.ID[:8], t0)
	require.NoError(t, err)
	assert.Equal(t, ViewReading, c.View())

	assert.Equal(t, 10*time.Minute, c.Elapsed(t0.Add(10*time.Minute)))
	require.NoError(t, c.TogglePause(t0.Add(10*time.Minute)))
	assert.Equal(t, 10*time.Minute, c.Elapsed(t0.Add(25*time.Minute)))
	require.NoError(t, c.TogglePause(t0.Add(25*time.Minute)))

	out, err := c.CompleteSession(ctx, 20, "Fear is the mind-killer.", t0.Add(45*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, ViewDashboard, c.View())
	_, running := c.Reading()
	assert.False(t, running)

	assert.Equal(t, 20, out.Book.CurrentPage)
	assert.Equal(t, 30*60, out.Session.ElapsedSeconds)
	assert.Equal(t, 100, out.Stats.XP)
	assert.Equal(t, 40, out.Stats.Mana)
	assert.Equal(t, model.Attributes{Focus: 1, Comprehension: 1, Discipline: 1}, out.Stats.Attributes)
	assert.Equal(t, 1, out.Stats.Streak)
	assert.Equal(t, 0.5, out.Stats.TotalTimeHours)
	assert.False(t, out.LevelUp)

	var ids []string
	for _, b := range out.NewBadges {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"first_chapter"}, ids)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Stats(), snap.Stats)
	assert.Equal(t, c.Books(), snap.Books)

	sessions, err := store.Sessions(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, out.Session, sessions[0])
}

func TestCompleteSessionWithoutStart(t *testing.T) {
	c := openTest(t, nil)
	_, err := c.CompleteSession(context.Background(), 5, "", t0)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCompletedBookCannotBeRead(t *testing.T) {
	c := openTest(t, nil)
	book := addBook(t, c, "Short", 10)
	ctx := context.Background()

	out, err := c.LogSession(ctx, book.ID, engine.Report{PagesRead: 50}, t0)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, out.Book.Status)
	assert.Equal(t, 1, out.Stats.BooksRead)
	assert.Equal(t, 1, out.Stats.Attributes.Exploration)

	_, err = c.StartSession(book.ID, t0)
	assert.ErrorIs(t, err, model.ErrAlreadyComplete)

	before := c.Stats()
	_, err = c.LogSession(ctx, book.ID, engine.Report{PagesRead: 1}, t0)
	assert.ErrorIs(t, err, model.ErrAlreadyComplete)
	assert.Equal(t, before, c.Stats())
}

func TestNegativePagesLeaveStateUntouched(t *testing.T) {
	c := openTest(t, nil)
	book := addBook(t, c, "Dune", 300)
	before := c.State()

	_, err := c.LogSession(context.Background(), book.ID, engine.Report{PagesRead: -3}, t0)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, before, c.State())
	assert.Empty(t, c.Sessions())
}

func TestStreakAcrossDays(t *testing.T) {
	c := openTest(t, nil)
	book := addBook(t, c, "Dune", 300)
	ctx := context.Background()

	for i, want := range []int{1, 2, 2, 3} {
		at := t0.Add(time.Duration([]int{0, 24, 25, 48}[i]) * time.Hour)
		out, err := c.LogSession(ctx, book.ID, engine.Report{PagesRead: 1}, at)
		require.NoError(t, err)
		assert.Equal(t, want, out.Stats.Streak, "session %d", i)
	}

	out, err := c.LogSession(ctx, book.ID, engine.Report{PagesRead: 1}, t0.Add(5*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stats.Streak)
	assert.Len(t, c.ReadingDays(), 4)
}

func TestPurchaseRequiresConfirmation(t *testing.T) {
	store := storage.NewMemoryStore()
	stats := model.DefaultStats()
	stats.Mana = 600
	require.NoError(t, store.Save(context.Background(), storage.Snapshot{Stats: stats}))
	c := openTest(t, store)
	ctx := context.Background()

	quote, err := c.QuotePurchase("s1")
	require.NoError(t, err)
	assert.Equal(t, 100, quote.ManaAfter)
	assert.Equal(t, 600, c.Stats().Mana, "quote must not spend")

	got, err := c.ConfirmPurchase(ctx, quote.Token)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Mana)

	_, err = c.ConfirmPurchase(ctx, quote.Token)
	assert.ErrorIs(t, err, model.ErrNotConfirmed, "tokens are single use")
	assert.Equal(t, 100, c.Stats().Mana)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Stats.Mana)
}

func TestPurchaseRefusals(t *testing.T) {
	c := openTest(t, nil)

	_, err := c.QuotePurchase("s1")
	var fe model.FundsError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 500, fe.Price)

	_, err = c.QuotePurchase("s3")
	assert.ErrorIs(t, err, model.ErrItemLocked)

	_, err = c.QuotePurchase("s9")
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestCancelledPurchaseCannotBeConfirmed(t *testing.T) {
	store := storage.NewMemoryStore()
	stats := model.DefaultStats()
	stats.Mana = 5000
	require.NoError(t, store.Save(context.Background(), storage.Snapshot{Stats: stats}))
	c := openTest(t, store)

	quote, err := c.QuotePurchase("s2")
	require.NoError(t, err)
	c.CancelPurchase(quote.Token)

	_, err = c.ConfirmPurchase(context.Background(), quote.Token)
	assert.ErrorIs(t, err, model.ErrNotConfirmed)
	assert.Equal(t, 5000, c.Stats().Mana)
}

func TestStaleQuoteIsRechecked(t *testing.T) {
	store := storage.NewMemoryStore()
	stats := model.DefaultStats()
	stats.Mana = 1300
	require.NoError(t, store.Save(context.Background(), storage.Snapshot{Stats: stats}))
	c := openTest(t, store)
	ctx := context.Background()

	a, err := c.QuotePurchase("s2")
	require.NoError(t, err)
	b, err := c.QuotePurchase("s2")
	require.NoError(t, err)

	_, err = c.ConfirmPurchase(ctx, a.Token)
	require.NoError(t, err)
	_, err = c.ConfirmPurchase(ctx, b.Token)
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	assert.Equal(t, 100, c.Stats().Mana)
}

func TestResetRequiresToken(t *testing.T) {
	store := storage.NewMemoryStore()
	c := openTest(t, store)
	ctx := context.Background()
	book := addBook(t, c, "Dune", 300)
	_, err := c.LogSession(ctx, book.ID, engine.Report{PagesRead: 10}, t0)
	require.NoError(t, err)

	assert.ErrorIs(t, c.ConfirmReset(ctx, "guess"), model.ErrNotConfirmed)
	assert.Len(t, c.Books(), 1)

	req := c.RequestReset()
	require.NoError(t, c.ConfirmReset(ctx, req.Token))
	assert.True(t, c.Onboarding())
	assert.Equal(t, model.DefaultStats(), c.Stats())
	assert.Empty(t, c.Books())
	assert.Empty(t, c.Sessions())

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, snap.FirstRun)

	assert.ErrorIs(t, c.ConfirmReset(ctx, req.Token), model.ErrNotConfirmed)
}

func TestWriteFailureDegradesToMemory(t *testing.T) {
	store := &failingStore{}
	c := openTest(t, store)
	ctx := context.Background()

	book := addBook(t, c, "Dune", 300)
	assert.True(t, c.Degraded())
	assert.True(t, store.closed)
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], "disk full")

	out, err := c.LogSession(ctx, book.ID, engine.Report{PagesRead: 20}, t0)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Stats.XP)
	assert.NotZero(t, out.Session.ID)
	assert.Len(t, c.Warnings(), 1, "degrading happens once")
}

func TestFailedResetIsReported(t *testing.T) {
	store := &failingStore{}
	c := openTest(t, store)
	ctx := context.Background()
	require.False(t, c.Degraded())

	req := c.RequestReset()
	require.NoError(t, c.ConfirmReset(ctx, req.Token))
	assert.True(t, c.Degraded(), "a reset the store refused must leave the coordinator degraded")
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], "disk full")
	assert.Equal(t, model.DefaultStats(), c.Stats())
}

func TestUnreadableStoreStartsFresh(t *testing.T) {
	c := openTest(t, &brokenStore{})
	assert.True(t, c.Degraded())
	assert.True(t, c.Onboarding())
	assert.NotEmpty(t, c.Warnings())

	addBook(t, c, "Dune", 300)
	assert.Len(t, c.Books(), 1)
}

func TestRecoveredRecordsAreReported(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rq.db")
	db, err := storage.OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, storage.KeyBooks, `not json`)
	require.NoError(t, err)

	c := openTest(t, storage.NewSQLiteStore(db, nil))
	assert.False(t, c.Degraded())
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], storage.KeyBooks)
	assert.Empty(t, c.Books())
}

func TestNavigate(t *testing.T) {
	c := openTest(t, nil)
	book := addBook(t, c, "Dune", 300)

	require.NoError(t, c.Navigate(ViewShop))
	assert.Equal(t, ViewShop, c.View())
	assert.Error(t, c.Navigate(View("inventory")))

	_, err := c.StartSession(book.ID, t0)
	require.NoError(t, err)
	require.NoError(t, c.Navigate(ViewStats))
	_, running := c.Reading()
	assert.False(t, running, "leaving the reading view abandons the session")
}

type fixedShard string

func (f fixedShard) Generate(context.Context, string) (string, error) { return string(f), nil }

func TestMemoryShard(t *testing.T) {
	c := openTest(t, nil)
	book := addBook(t, c, "Dune", 300)
	assert.Equal(t, assist.FallbackShard("Dune"), c.MemoryShard(context.Background(), book.ID))

	c2 := Open(context.Background(), storage.NewMemoryStore(), Options{Shards: fixedShard("Sand remembers.")})
	assert.Equal(t, "Sand remembers.", c2.MemoryShard(context.Background(), "anything"))
}

func TestCurvePolicyLevelsUp(t *testing.T) {
	c := Open(context.Background(), storage.NewMemoryStore(), Options{Policy: engine.CurveLevel{}, Location: time.UTC})
	book := addBook(t, c, "Encyclopedia", 1000)

	out, err := c.LogSession(context.Background(), book.ID, engine.Report{PagesRead: 600}, t0)
	require.NoError(t, err)
	assert.True(t, out.LevelUp)
	assert.Equal(t, engine.LevelForTotalXP(3000), out.Stats.Level)
	assert.Equal(t, engine.XPRequiredForLevel(out.Stats.Level+1), out.Stats.MaxXP)
}
