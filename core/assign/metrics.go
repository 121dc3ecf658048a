package assign

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignmentsTotal  *prometheus.CounterVec
	unassignedEntries *prometheus.CounterVec
	assignmentRuns    prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter) {
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignments_total",
			Help: "Number of trucks assigned to schedule entries",
		},
		[]string{"truck_type"},
	)
	left := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignment_pool_exhausted_total",
			Help: "Number of entries left unassigned because no matching truck remained",
		},
		[]string{"truck_type"},
	)
	runs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assignment_runs_total",
			Help: "Number of auto-assignment runs",
		},
	)
	return asn, left, runs
}

func init() {
	assignmentsTotal, unassignedEntries, assignmentRuns = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers assignment metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsTotal, unassignedEntries, assignmentRuns)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsTotal, unassignedEntries, assignmentRuns = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
