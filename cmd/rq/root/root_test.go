package root

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"readquest/internal/model"
	"readquest/internal/storage"
)

func run(t *testing.T, db, input string, args ...string) (string, error) {
	t.Helper()
	flags = globalFlags{}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func loadSnapshot(t *testing.T, db string) storage.Snapshot {
	t.Helper()
	store, err := storage.OpenSQLiteStore(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return snap
}

func TestReadingLoop(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	db := filepath.Join(t.TempDir(), "rq.db")

	if _, err := run(t, db, "", "--name", "Ada", "add", "Dune", "--pages", "300", "--genre", "Sci-Fi"); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap := loadSnapshot(t, db)
	if len(snap.Books) != 1 || snap.Books[0].Title != "Dune" {
		t.Fatalf("books=%+v", snap.Books)
	}
	if snap.Stats.DisplayName != "Ada" {
		t.Fatalf("display name=%q", snap.Stats.DisplayName)
	}
	id := snap.Books[0].ID

	out, err := run(t, db, "", "read", id[:8], "--pages", "25", "--minutes", "10")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(out, "+125 XP") {
		t.Fatalf("read output missing xp: %q", out)
	}

	snap = loadSnapshot(t, db)
	if snap.Stats.XP != 125 || snap.Stats.Mana != 50 || snap.Books[0].CurrentPage != 25 {
		t.Fatalf("after read: stats=%+v book=%+v", snap.Stats, snap.Books[0])
	}

	out, err = run(t, db, "", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Ada") || !strings.Contains(out, "Level") {
		t.Fatalf("status output=%q", out)
	}
}

func TestBuyNeedsMana(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	db := filepath.Join(t.TempDir(), "rq.db")

	_, err := run(t, db, "", "buy", "s1", "--yes")
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("err=%v, want insufficient funds", err)
	}
	_, err = run(t, db, "", "buy", "nope")
	if !errors.Is(err, model.ErrItemNotFound) {
		t.Fatalf("err=%v, want item not found", err)
	}
}

func TestResetAsksFirst(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	db := filepath.Join(t.TempDir(), "rq.db")

	if _, err := run(t, db, "", "add", "Dune", "--pages", "300"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := run(t, db, "n\n", "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "cancelled") {
		t.Fatalf("reset output=%q", out)
	}
	if got := len(loadSnapshot(t, db).Books); got != 1 {
		t.Fatalf("declined reset removed books: %d left", got)
	}

	if _, err := run(t, db, "y\n", "reset"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := len(loadSnapshot(t, db).Books); got != 0 {
		t.Fatalf("confirmed reset left %d books", got)
	}
}

func TestAddRequiresTitle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "rq.db")
	if _, err := run(t, db, "", "add"); err == nil {
		t.Fatalf("expected an error without title or --scan")
	}
	if _, err := run(t, db, "", "add", "Dune"); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err=%v, want invalid input for zero pages", err)
	}
}

func TestResetWithoutDatabaseSaysNotSaved(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	db := filepath.Join(blocker, "rq.db")

	out, err := run(t, db, "", "reset", "--yes")
	if !errors.Is(err, model.ErrPersistenceUnavailable) {
		t.Fatalf("err=%v, want persistence unavailable", err)
	}
	if strings.Contains(out, "Progress reset") {
		t.Fatalf("unsaved reset reported as done: %q", out)
	}
}

func TestReadRejectsOverflowingMinutes(t *testing.T) {
	t.Setenv("READQUEST_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	db := filepath.Join(t.TempDir(), "rq.db")
	if _, err := run(t, db, "", "add", "Dune", "--pages", "300"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := loadSnapshot(t, db).Books[0].ID

	if _, err := run(t, db, "", "read", id[:8], "--pages", "9223372036854775807"); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("huge pages: err=%v, want invalid input", err)
	}
	if _, err := run(t, db, "", "read", id[:8], "--pages", "1", "--minutes", "9223372036854775807"); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("huge minutes: err=%v, want invalid input", err)
	}
	snap := loadSnapshot(t, db)
	if len(snap.Books) != 1 || snap.Books[0].CurrentPage != 0 {
		t.Fatalf("rejected reads changed the collection: %+v", snap.Books)
	}
}
