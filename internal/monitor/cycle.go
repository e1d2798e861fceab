package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalant-monitor/internal/diff"
	"catalant-monitor/internal/domain"
	"catalant-monitor/internal/extract"
	"catalant-monitor/internal/seenstore"
	"catalant-monitor/internal/validate"
)

// Stage names a step of the cycle, in the order they run.
type Stage string

const (
	StageLocking    Stage = "locking"
	StageLoading    Stage = "loading"
	StageExtracting Stage = "extracting"
	StageValidating Stage = "validating" // filters, never fails
	StageDiffing    Stage = "diffing"    // pure, never fails
	StageNotifying  Stage = "notifying"
	StagePersisting Stage = "persisting"
)

// CycleError marks an aborted cycle with the stage that failed.
type CycleError struct {
	Stage Stage
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle aborted while %s: %v", e.Stage, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

func abortedAt(stage Stage, err error) *CycleError {
	return &CycleError{Stage: stage, Err: err}
}

// Notifier is the dispatch side of a cycle; faked in tests.
type Notifier interface {
	Notify(ctx context.Context, fresh []domain.Listing) error
}

// Controller runs one polling cycle end to end. It owns the seen set in
// memory for the duration of a cycle; cycles are strictly sequential.
type Controller struct {
	Extractor extract.Extractor
	Store     seenstore.Store
	Notifier  Notifier
	LockPath  string           // "" disables the overlap lock
	Now       func() time.Time // defaults to time.Now
}

type Result struct {
	Extracted int
	Valid     int
	New       int
	Notified  bool
	Tracked   int
}

// RunCycle performs one extract → validate → diff → notify → persist
// pass. Ids are marked seen only after a successful dispatch, so a
// failed send leaves them unseen and the next cycle retries them
// (at-least-once). The one exception is a persist failure after the mail
// already went out, which is the accepted duplicate-notification risk.
func (c *Controller) RunCycle(ctx context.Context) (Result, error) {
	var res Result
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	if c.LockPath != "" {
		lock, err := seenstore.AcquireLock(c.LockPath)
		if err != nil {
			return res, abortedAt(StageLocking, err)
		}
		defer lock.Release()
	}

	set, err := c.Store.Load(ctx)
	if err != nil {
		return res, abortedAt(StageLoading, err)
	}
	res.Tracked = set.Len()
	log.Printf("[cycle] loaded %d seen listings", set.Len())

	records, err := c.Extractor.Extract(ctx)
	if err != nil {
		return res, abortedAt(StageExtracting, err)
	}
	res.Extracted = len(records)

	if len(records) == 0 {
		// an empty snapshot usually means the portal rendered nothing
		// (half-loaded page, selector drift); leave the store alone
		log.Printf("[cycle] no listings extracted, store untouched")
		return res, nil
	}

	listings := validate.All(records, now())
	res.Valid = len(listings)

	fresh := diff.New(listings, set)
	res.New = len(fresh)
	if len(fresh) == 0 {
		log.Printf("[cycle] nothing new extracted=%d valid=%d tracked=%d",
			res.Extracted, res.Valid, res.Tracked)
		return res, nil
	}

	if err := c.Notifier.Notify(ctx, fresh); err != nil {
		return res, abortedAt(StageNotifying, err)
	}
	res.Notified = true

	at := now()
	for _, l := range fresh {
		set.MarkSeen(l, at)
	}
	if err := c.Store.Save(ctx, set); err != nil {
		// the mail is already out; the next run may notify these again
		log.Printf("[cycle] persist failed after send, duplicate notification risk: %v", err)
		return res, abortedAt(StagePersisting, err)
	}
	res.Tracked = set.Len()

	log.Printf("[cycle] ok extracted=%d valid=%d new=%d tracked=%d",
		res.Extracted, res.Valid, res.New, res.Tracked)
	return res, nil
}
