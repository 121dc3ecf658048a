package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeMonitor struct {
	errs    []error
	tags    []map[string]string
	panics  []any
	flushes int
}

func (f *fakeMonitor) CaptureException(err error, tags map[string]string) {
	f.errs = append(f.errs, err)
	f.tags = append(f.tags, tags)
}
func (f *fakeMonitor) CapturePanic(v any)  { f.panics = append(f.panics, v) }
func (f *fakeMonitor) Flush(time.Duration) { f.flushes++ }

func TestCaptureException(t *testing.T) {
	f := &fakeMonitor{}
	Init(f)
	t.Cleanup(func() { Init(nil) })

	CaptureException(nil, nil)
	CaptureException(errors.New("history append"), map[string]string{"component": "history"})
	assert.Len(t, f.errs, 1)
	assert.Equal(t, "history", f.tags[0]["component"])
}

func TestRecoverReraises(t *testing.T) {
	f := &fakeMonitor{}
	Init(f)
	t.Cleanup(func() { Init(nil) })

	assert.PanicsWithValue(t, "boom", func() {
		defer Recover()
		panic("boom")
	})
	assert.Equal(t, []any{"boom"}, f.panics)
	assert.Equal(t, 1, f.flushes)
}

func TestInitNilIsNop(t *testing.T) {
	Init(nil)
	assert.NotPanics(t, func() {
		CaptureException(errors.New("x"), nil)
		Flush(time.Millisecond)
	})
}
