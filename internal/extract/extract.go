package extract

import (
	"context"

	"catalant-monitor/internal/domain"
)

// Extractor produces one full snapshot of raw listing records per cycle,
// or fails explicitly. Failures abort the cycle; the seen store is never
// touched on an extraction failure.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.ListingRecord, error)
}
