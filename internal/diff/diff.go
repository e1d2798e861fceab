package diff

import "catalant-monitor/internal/domain"

// Snapshot is a read-only view of the ids already notified.
type Snapshot interface {
	Contains(id string) bool
}

// New returns the listings whose id is not in seen, in extraction order.
// Duplicate ids within the batch are collapsed to their first occurrence
// (the extractor can hand back the same card twice). seen is never mutated
// here; marking happens only after notification dispatch succeeds.
func New(current []domain.Listing, seen Snapshot) []domain.Listing {
	inBatch := make(map[string]bool, len(current))

	var out []domain.Listing
	for _, l := range current {
		if inBatch[l.ID] {
			continue
		}
		inBatch[l.ID] = true
		if seen.Contains(l.ID) {
			continue
		}
		out = append(out, l)
	}
	return out
}
