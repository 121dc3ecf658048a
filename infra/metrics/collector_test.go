package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/haulplan/core/events"
	coremetrics "github.com/kilianp07/haulplan/core/metrics"
	"github.com/kilianp07/haulplan/internal/eventbus"
)

type captureSink struct {
	mu      sync.Mutex
	ingests []coremetrics.IngestEvent
	runs    []coremetrics.AssignmentEvent
}

func (c *captureSink) RecordIngest(ev coremetrics.IngestEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingests = append(c.ingests, ev)
	return nil
}

func (c *captureSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, ev)
	return nil
}

func (c *captureSink) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ingests), len(c.runs)
}

func TestStartEventCollector(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := eventbus.New[events.Event](0)
	sink := &captureSink{}
	StartEventCollector(ctx, bus, sink)

	require.Eventually(t, func() bool {
		return bus.Publish(events.IngestEvent{RunID: "r1", TruckTypes: map[string]int{"Slinger": 1}}) == 1
	}, time.Second, 10*time.Millisecond)
	bus.Publish(events.AssignmentEvent{RunID: "r1"})
	bus.Publish(events.RunEvent{RunID: "r1", Assigned: 1, ByType: map[string]events.TypeCount{"Slinger": {Assigned: 1}}})

	require.Eventually(t, func() bool {
		_, r := sink.counts()
		return r == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, coremetrics.TypeOutcome{Assigned: 1}, sink.runs[0].ByType["Slinger"])
	assert.Equal(t, "r1", sink.ingests[0].RunID)
}

func TestRecord_IngestOnlySink(t *testing.T) {
	var s ingestOnly
	assert.NoError(t, Record(&s, events.RunEvent{RunID: "r1"}))
	assert.NoError(t, Record(&s, events.IngestEvent{RunID: "r1"}))
	assert.Equal(t, 1, int(s))
}

type ingestOnly int

func (i *ingestOnly) RecordIngest(coremetrics.IngestEvent) error {
	*i++
	return nil
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordIngest(coremetrics.IngestEvent{TruckTypes: map[string]int{"Slinger": 1}}))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `haulplan_entries_ingested_total{truck_type="Slinger"} 1`))
}
