package seenstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

// FileStore keeps the seen set in a single JSON document keyed by id,
// so operators can inspect, hand-edit, or delete it between runs.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (fs *FileStore) Load(ctx context.Context) (*SeenSet, error) {
	set := NewSeenSet()

	b, err := os.ReadFile(fs.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[store] unreadable %s, starting empty: %v", fs.Path, err)
		}
		return set, nil
	}

	var entries map[string]Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		log.Printf("[store] corrupt %s, starting empty: %v", fs.Path, err)
		return set, nil
	}

	for id, e := range entries {
		if id == "" {
			continue
		}
		set.entries[id] = e
	}
	return set, nil
}

// Save writes the whole set via tmp+rename so a crash mid-write leaves
// either the prior file or the fully updated one, never a torn file.
func (fs *FileStore) Save(ctx context.Context, set *SeenSet) error {
	b, err := json.MarshalIndent(set.entries, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := fs.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fs.Path)
}
