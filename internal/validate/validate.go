package validate

import (
	"strings"
	"time"

	"catalant-monitor/internal/domain"
)

// Validate checks one raw record. A record needs a non-empty title and a
// non-empty id; everything else defaults to unknown, field by field, so a
// bad budget or location can never drop an otherwise good listing.
// Rejection is routine filtering, not an error.
func Validate(raw domain.ListingRecord, now time.Time) (domain.Listing, bool) {
	id := strings.TrimSpace(raw.ID)
	title := strings.TrimSpace(raw.Title)
	if id == "" || title == "" {
		return domain.Listing{}, false
	}

	return domain.Listing{
		ID:          id,
		Title:       title,
		Description: domain.FieldOf(strings.TrimSpace(raw.Description)),
		Location:    domain.FieldOf(strings.TrimSpace(raw.Location)),
		PostedAgo:   domain.FieldOf(strings.TrimSpace(raw.PostedAgo)),
		Status:      domain.FieldOf(strings.TrimSpace(raw.Status)),
		Categories:  cleanCategories(raw.Categories),
		URL:         domain.FieldOf(strings.TrimSpace(raw.URL)),
		DetectedAt:  now,
	}, true
}

// All validates a batch, preserving extraction order.
func All(records []domain.ListingRecord, now time.Time) []domain.Listing {
	out := make([]domain.Listing, 0, len(records))
	for _, r := range records {
		l, ok := Validate(r, now)
		if !ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

func cleanCategories(cats []string) []string {
	var out []string
	for _, c := range cats {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
