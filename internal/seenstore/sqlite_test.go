package seenstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"catalant-monitor/internal/domain"
)

func sqliteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "monitor.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteLoadEmpty(t *testing.T) {
	set, err := sqliteStore(t).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("fresh db should be empty, got %d", set.Len())
	}
}

func TestSQLiteSaveLoadRoundtrip(t *testing.T) {
	s := sqliteStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

	set := NewSeenSet()
	set.MarkSeen(domain.Listing{ID: "P1", Title: "Audit"}, at)
	set.MarkSeen(domain.Listing{ID: "P2", Title: "Review"}, at)
	if err := s.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 2 || !got.Contains("P1") || !got.Contains("P2") {
		t.Fatalf("roundtrip lost entries: %v", got.IDs())
	}
	if e := got.entries["P1"]; !e.FirstSeenAt.Equal(at) {
		t.Fatalf("first seen = %v, want %v", e.FirstSeenAt, at)
	}
}

func TestSQLiteSaveKeepsOriginalFirstSeen(t *testing.T) {
	s := sqliteStore(t)
	ctx := context.Background()
	t1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(72 * time.Hour)

	first := NewSeenSet()
	first.MarkSeen(domain.Listing{ID: "P1", Title: "Audit"}, t1)
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	// a later cycle re-saving the same id must not move the timestamp
	second := NewSeenSet()
	second.MarkSeen(domain.Listing{ID: "P1", Title: "Audit"}, t2)
	second.MarkSeen(domain.Listing{ID: "P2", Title: "Review"}, t2)
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Fatalf("len = %d, want 2", got.Len())
	}
	if e := got.entries["P1"]; !e.FirstSeenAt.Equal(t1) {
		t.Fatalf("first seen moved to %v, want %v", e.FirstSeenAt, t1)
	}
}
