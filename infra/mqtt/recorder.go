package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/haulplan/core/notify"
)

// Recorder is an in-memory notifier used in tests and dry runs.
type Recorder struct {
	mu      sync.Mutex
	Notices []notify.Notice
	// FailTrucks lists trucks whose notices fail.
	FailTrucks map[string]bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{FailTrucks: make(map[string]bool)}
}

// NotifyAssignment records the notice or returns an error if configured to fail.
func (r *Recorder) NotifyAssignment(_ context.Context, n notify.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailTrucks[n.Truck] {
		return fmt.Errorf("publish failed")
	}
	r.Notices = append(r.Notices, n)
	return nil
}

// Sent returns a copy of the recorded notices.
func (r *Recorder) Sent() []notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notice(nil), r.Notices...)
}
