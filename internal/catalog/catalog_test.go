package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/roboco-io/play2html/internal/ir"
)

func openTemp(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "catalog.sqlite"))
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func samplePlay(title string) *ir.Play {
	play := ir.NewPlay()
	play.Title = ir.Text(title)
	scene := play.AddAct(ir.NewAct(ir.ActAct)).AddScene(ir.NewScene(ir.SceneScene))
	scene.AddStageDirection("Enter")
	sp := scene.AddSpeech(ir.NewSpeech())
	sp.AddSpeaker("A")
	sp.AddLine(ir.NewLine()).AppendText("line")
	return play
}

func TestEntryFor(t *testing.T) {
	at := time.Date(2024, 4, 23, 12, 0, 0, 0, time.FixedZone("BST", 3600))
	e := EntryFor("src/hamlet.xml", "hamlet.html", samplePlay("Hamlet"), at)

	if e.Title != "Hamlet" || e.Subtitle != "" {
		t.Errorf("unexpected titles: %+v", e)
	}
	want := ir.Stats{Acts: 1, Scenes: 1, Speeches: 1, Lines: 1, StageDirections: 1}
	if e.Stats != want {
		t.Errorf("stats = %+v, want %+v", e.Stats, want)
	}
	if e.ConvertedAt.Location() != time.UTC || !e.ConvertedAt.Equal(at) {
		t.Errorf("expected UTC timestamp, got %v", e.ConvertedAt)
	}
}

func TestCatalog_UpsertAndGet(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	at := time.Date(2024, 4, 23, 12, 0, 0, 0, time.UTC)

	e := EntryFor("src/hamlet.xml", "hamlet.html", samplePlay("Hamlet"), at)
	if err := c.Upsert(ctx, e); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	got, err := c.Get(ctx, "src/hamlet.xml")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Title != "Hamlet" || got.File != "hamlet.html" || got.Stats != e.Stats || !got.ConvertedAt.Equal(at) {
		t.Errorf("unexpected entry: %+v", got)
	}

	// Replacing keeps one row per source.
	e.Title = "The Tragedy of Hamlet"
	e.ConvertedAt = at.Add(time.Hour)
	if err := c.Upsert(ctx, e); err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}
	entries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "The Tragedy of Hamlet" {
		t.Errorf("expected replaced entry, got %+v", entries)
	}
}

func TestCatalog_GetNotFound(t *testing.T) {
	c := openTemp(t)

	_, err := c.Get(context.Background(), "missing.xml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_ListOrder(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	now := time.Now()

	for _, title := range []string{"Macbeth", "Hamlet", "Othello"} {
		e := EntryFor(title+".xml", title+".html", samplePlay(title), now)
		if err := c.Upsert(ctx, e); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}
	}

	entries, err := c.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"Hamlet", "Macbeth", "Othello"} {
		if entries[i].Title != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, entries[i].Title)
		}
	}

	if err := c.Delete(ctx, "Hamlet.xml"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if entries, _ = c.List(ctx); len(entries) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(entries))
	}
}

func TestCatalog_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	ctx := context.Background()

	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if err := c.Upsert(ctx, EntryFor("a.xml", "a.html", samplePlay("A"), time.Now())); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	c.Close()

	c, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer c.Close()

	if c.Path() != path {
		t.Errorf("expected path %s, got %s", path, c.Path())
	}
	if _, err := c.Get(ctx, "a.xml"); err != nil {
		t.Errorf("expected entry to persist: %v", err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Error("expected error for empty path")
	}
}
