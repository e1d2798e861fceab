package seenstore

import (
	"context"
	"sort"
	"time"

	"catalant-monitor/internal/domain"
)

// Entry is one remembered listing. Enough of the record is kept to make
// the store file useful when inspected by hand.
type Entry struct {
	FirstSeenAt time.Time `json:"first_seen_at"`
	Title       string    `json:"title,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// SeenSet is the in-memory working copy for one cycle. Ids are opaque
// strings; they are added, never removed.
type SeenSet struct {
	entries map[string]Entry
}

func NewSeenSet() *SeenSet {
	return &SeenSet{entries: make(map[string]Entry)}
}

func (s *SeenSet) Contains(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// MarkSeen records a listing as notified. Marking an id twice keeps the
// original first-seen timestamp.
func (s *SeenSet) MarkSeen(l domain.Listing, at time.Time) {
	if _, ok := s.entries[l.ID]; ok {
		return
	}
	s.entries[l.ID] = Entry{
		FirstSeenAt: at.UTC(),
		Title:       l.Title,
		URL:         l.URL.Or(""),
	}
}

func (s *SeenSet) Len() int {
	return len(s.entries)
}

// IDs returns the tracked ids in sorted order.
func (s *SeenSet) IDs() []string {
	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Store persists a SeenSet between cycles. Load on missing or corrupt
// backing state yields an empty set: a monitor with no history is valid,
// the first cycle just reports everything currently listed. Save must be
// atomic with respect to a crash mid-write.
type Store interface {
	Load(ctx context.Context) (*SeenSet, error)
	Save(ctx context.Context, set *SeenSet) error
}
