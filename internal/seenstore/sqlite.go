package seenstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the embedded-database backend behind the same Store
// contract as FileStore, for deployments where the seen set outgrows a
// flat file.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS seen_listings (
  id TEXT PRIMARY KEY,
  first_seen_at TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT ''
);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate seen_listings: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (*SeenSet, error) {
	set := NewSeenSet()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, first_seen_at, title, url FROM seen_listings;`)
	if err != nil {
		return nil, fmt.Errorf("load seen set: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, firstSeen, title, url string
		if err := rows.Scan(&id, &firstSeen, &title, &url); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, firstSeen)
		if err != nil {
			// tolerate hand-edited rows; keep the id, lose the timestamp
			log.Printf("[store] bad first_seen_at for %s: %v", id, err)
			t = time.Time{}
		}
		set.entries[id] = Entry{FirstSeenAt: t, Title: title, URL: url}
	}
	return set, rows.Err()
}

// Save inserts the entries in one transaction. INSERT OR IGNORE keeps the
// original first-seen timestamp for ids that are already tracked.
func (s *SQLiteStore) Save(ctx context.Context, set *SeenSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO seen_listings(id, first_seen_at, title, url)
VALUES(?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, e := range set.entries {
		if _, err := stmt.ExecContext(ctx, id, e.FirstSeenAt.Format(time.RFC3339), e.Title, e.URL); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	return tx.Commit()
}
