package domain

import "time"

// Field is an optional text value extracted from a listing card. A failed
// extraction leaves the field unknown; it never rejects the whole record.
type Field struct {
	Value string
	Known bool
}

func FieldOf(s string) Field {
	if s == "" {
		return Field{}
	}
	return Field{Value: s, Known: true}
}

// Or returns the value, or fallback when the field is unknown.
func (f Field) Or(fallback string) string {
	if !f.Known {
		return fallback
	}
	return f.Value
}

// String renders unknown fields as the literal "unknown" so they stay
// visible in emails instead of being silently omitted.
func (f Field) String() string {
	return f.Or("unknown")
}

// ListingRecord is one raw project card as scraped from the dashboard.
// No invariants: any field may be empty or missing.
type ListingRecord struct {
	ID          string
	Title       string
	Description string
	Location    string
	PostedAgo   string
	Status      string
	Categories  []string
	URL         string
}

// Listing is a validated record. ID and Title are non-empty; everything
// else is best effort. Immutable once built.
type Listing struct {
	ID          string
	Title       string
	Description Field
	Location    Field
	PostedAgo   Field
	Status      Field
	Categories  []string
	URL         Field
	DetectedAt  time.Time
}
