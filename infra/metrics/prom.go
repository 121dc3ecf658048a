package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/haulplan/core/metrics"
)

// PromSink records planning activity in Prometheus metrics.
type PromSink struct {
	ingested   *prometheus.CounterVec
	defaulted  prometheus.Counter
	runs       prometheus.Counter
	unassigned *prometheus.GaugeVec
}

// NewPromSink registers planning metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ingested, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "haulplan_entries_ingested_total",
		Help: "Schedule entries produced by ingestion",
	}, []string{"truck_type"}))
	if err != nil {
		return nil, err
	}
	defaulted, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "haulplan_fields_defaulted_total",
		Help: "Row fields replaced by a default because they could not be parsed",
	}))
	if err != nil {
		return nil, err
	}
	runs, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "haulplan_assignment_runs_total",
		Help: "Completed auto-assignment runs",
	}))
	if err != nil {
		return nil, err
	}
	unassigned, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "haulplan_entries_unassigned",
		Help: "Entries left unassigned by the last assignment run",
	}, []string{"truck_type"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{ingested: ingested, defaulted: defaulted, runs: runs, unassigned: unassigned}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordIngest counts entries per truck type.
func (s *PromSink) RecordIngest(ev coremetrics.IngestEvent) error {
	for tt, n := range ev.TruckTypes {
		s.ingested.WithLabelValues(tt).Add(float64(n))
	}
	s.defaulted.Add(float64(ev.Defaulted))
	return nil
}

// RecordAssignment sets the unassigned gauge to the outcome of the run.
func (s *PromSink) RecordAssignment(ev coremetrics.AssignmentEvent) error {
	s.runs.Inc()
	s.unassigned.Reset()
	for tt, o := range ev.ByType {
		s.unassigned.WithLabelValues(tt).Set(float64(o.Unassigned))
	}
	return nil
}
