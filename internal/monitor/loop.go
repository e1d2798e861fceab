package monitor

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Status is the outcome of the most recent cycle, readable while the
// loop runs.
type Status struct {
	Running   bool   `json:"running"`
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastNew   int    `json:"last_new"`
	Tracked   int    `json:"tracked"`
}

// RunLoop runs cycles until ctx is done: one immediately, then one per
// interval. A cycle failure never stops the loop; each failure is
// isolated from the next cycle's chance to succeed.
func (c *Controller) RunLoop(ctx context.Context, interval time.Duration, status *atomic.Value) {
	runOne := func() {
		st := loadStatus(status)
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
		storeStatus(status, st)

		res, err := c.RunCycle(ctx)

		st.Running = false
		st.LastNew = res.New
		st.Tracked = res.Tracked
		if err != nil {
			st.LastError = err.Error()
			log.Printf("[loop] %v", err)
		} else {
			st.LastError = ""
			st.LastOkAt = time.Now().Format(time.RFC3339)
		}
		storeStatus(status, st)
	}

	runOne()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOne()
		}
	}
}

func loadStatus(v *atomic.Value) Status {
	if v == nil {
		return Status{}
	}
	st, _ := v.Load().(Status)
	return st
}

func storeStatus(v *atomic.Value, st Status) {
	if v != nil {
		v.Store(st)
	}
}
