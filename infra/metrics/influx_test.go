package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/haulplan/core/metrics"
)

func captureServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, strings.TrimSpace(string(b)))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), bodies...)
	}
}

func TestInfluxSink_RecordIngest(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	ev := coremetrics.IngestEvent{RunID: "r1", Source: "monday.csv", Rows: 4, Entries: 7, Defaulted: 1, Time: now}
	if err := sink.RecordIngest(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("ingest_run").
		AddTag("source", "monday.csv").
		AddField("run_id", "r1").
		AddField("rows", 4).
		AddField("entries", 7).
		AddField("defaulted", 1).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if got := bodies(); len(got) != 1 || got[0] != exp {
		t.Errorf("unexpected bodies: %#v", got)
	}
}

func TestInfluxSink_RecordAssignment(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	ev := coremetrics.AssignmentEvent{
		RunID: "r1",
		ByType: map[string]coremetrics.TypeOutcome{
			"Slinger":    {Assigned: 1},
			"Dump Truck": {Assigned: 2, Unassigned: 1},
		},
		Time: now,
	}
	if err := sink.RecordAssignment(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	var exp []string
	for _, c := range []struct {
		tt   string
		a, u int
	}{{"Dump Truck", 2, 1}, {"Slinger", 1, 0}} {
		p := write.NewPointWithMeasurement("assignment_run").
			AddTag("truck_type", c.tt).
			AddField("run_id", "r1").
			AddField("assigned", c.a).
			AddField("unassigned", c.u).
			SetTime(now)
		exp = append(exp, strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)))
	}
	got := bodies()
	if len(got) != 2 || got[0] != exp[0] || got[1] != exp[1] {
		t.Errorf("unexpected bodies: %#v", got)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
