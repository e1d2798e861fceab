package seenstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalant-monitor/internal/domain"
)

func fileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "seen_projects.json"))
}

func TestFileLoadMissing(t *testing.T) {
	set, err := fileStore(t).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %d entries", set.Len())
	}
}

func TestFileSaveLoadRoundtrip(t *testing.T) {
	fs := fileStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

	set := NewSeenSet()
	set.MarkSeen(domain.Listing{ID: "P1", Title: "Audit", URL: domain.FieldOf("https://x/p1")}, at)
	set.MarkSeen(domain.Listing{ID: "P2", Title: "Review"}, at)

	if err := fs.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 2 || !got.Contains("P1") || !got.Contains("P2") {
		t.Fatalf("roundtrip lost entries: %v", got.IDs())
	}
	if e := got.entries["P1"]; !e.FirstSeenAt.Equal(at) || e.Title != "Audit" {
		t.Fatalf("entry P1 = %+v", e)
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	fs := fileStore(t)
	if err := os.WriteFile(fs.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt file should load as empty, got error: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("corrupt file should load as empty, got %d entries", set.Len())
	}
}

func TestFileSaveLeavesNoTemp(t *testing.T) {
	fs := fileStore(t)
	set := NewSeenSet()
	set.MarkSeen(domain.Listing{ID: "P1", Title: "Audit"}, time.Now())

	if err := fs.Save(context.Background(), set); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(fs.Path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("temp file left behind after save")
	}
}

func TestMarkSeenKeepsFirstTimestamp(t *testing.T) {
	t1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	set := NewSeenSet()
	l := domain.Listing{ID: "P1", Title: "Audit"}
	set.MarkSeen(l, t1)
	set.MarkSeen(l, t2)

	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1", set.Len())
	}
	if got := set.entries["P1"].FirstSeenAt; !got.Equal(t1) {
		t.Fatalf("first seen = %v, want %v", got, t1)
	}
}
