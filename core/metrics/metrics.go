package metrics

import "time"

// IngestEvent describes one normalization of a row source.
type IngestEvent struct {
	RunID     string
	Source    string
	Rows      int
	Entries   int
	Defaulted int
	// TruckTypes counts produced entries per truck type.
	TruckTypes map[string]int
	Time       time.Time
}

// Sink records ingestion activity for observability purposes.
type Sink interface {
	RecordIngest(ev IngestEvent) error
}

// TypeOutcome is the assignment outcome for one truck type.
type TypeOutcome struct {
	Assigned   int
	Unassigned int
}

// AssignmentEvent describes one run of the assignment engine.
type AssignmentEvent struct {
	RunID      string
	Assigned   int
	Unassigned int
	ByType     map[string]TypeOutcome
	Time       time.Time
}

// AssignmentRecorder is implemented by sinks able to record assignment runs.
type AssignmentRecorder interface {
	RecordAssignment(ev AssignmentEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordIngest(IngestEvent) error         { return nil }
func (NopSink) RecordAssignment(AssignmentEvent) error { return nil }
