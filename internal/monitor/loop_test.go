package monitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunLoopRunsImmediatelyAndStops(t *testing.T) {
	ex := &fakeExtractor{records: records("P1")}
	nt := &fakeNotifier{}
	c, _ := newController(t, ex, nt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // first cycle still runs, then the loop exits

	var status atomic.Value
	done := make(chan struct{})
	go func() {
		c.RunLoop(ctx, time.Hour, &status)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop on context cancel")
	}

	st := loadStatus(&status)
	if st.Running {
		t.Error("status still marked running")
	}
	if st.LastNew != 1 || st.LastError != "" {
		t.Errorf("status = %+v", st)
	}
	if len(nt.batches) != 1 {
		t.Errorf("immediate cycle dispatched %d times", len(nt.batches))
	}
}

func TestRunLoopSurvivesCycleFailure(t *testing.T) {
	c, _ := newController(t, &fakeExtractor{err: context.DeadlineExceeded}, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var status atomic.Value
	c.RunLoop(ctx, time.Hour, &status) // must return, not panic or hang

	st := loadStatus(&status)
	if st.LastError == "" {
		t.Error("failed cycle should be visible in status")
	}
}
