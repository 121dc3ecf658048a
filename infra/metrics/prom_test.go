package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/haulplan/core/metrics"
)

func TestPromSink_RecordIngest(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordIngest(coremetrics.IngestEvent{
		TruckTypes: map[string]int{"Dump Truck": 3, "Slinger": 1},
		Defaulted:  2,
	}))
	require.NoError(t, sink.RecordIngest(coremetrics.IngestEvent{TruckTypes: map[string]int{"Slinger": 2}}))

	expected := `
# HELP haulplan_entries_ingested_total Schedule entries produced by ingestion
# TYPE haulplan_entries_ingested_total counter
haulplan_entries_ingested_total{truck_type="Dump Truck"} 3
haulplan_entries_ingested_total{truck_type="Slinger"} 3
`
	assert.NoError(t, testutil.CollectAndCompare(sink.ingested, strings.NewReader(expected)))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.defaulted))
}

func TestPromSink_RecordAssignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordAssignment(coremetrics.AssignmentEvent{
		ByType: map[string]coremetrics.TypeOutcome{"Dump Truck": {Assigned: 1, Unassigned: 2}, "Slinger": {Unassigned: 1}},
	}))
	require.NoError(t, sink.RecordAssignment(coremetrics.AssignmentEvent{
		ByType: map[string]coremetrics.TypeOutcome{"Dump Truck": {Assigned: 2}},
	}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.runs))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.unassigned.WithLabelValues("Dump Truck")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.unassigned), "gauge only reflects the last run")
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	b, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, a.RecordIngest(coremetrics.IngestEvent{TruckTypes: map[string]int{"Slinger": 1}}))
	require.NoError(t, b.RecordIngest(coremetrics.IngestEvent{TruckTypes: map[string]int{"Slinger": 1}}))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.ingested.WithLabelValues("Slinger")))
}
