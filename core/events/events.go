package events

import (
	"time"

	"github.com/kilianp07/haulplan/core/model"
)

// Event is anything published on the planning bus.
type Event interface {
	Kind() string
}

// IngestEvent is published after a row source has been normalized.
type IngestEvent struct {
	RunID      string
	Source     string
	Rows       int
	Entries    int
	Defaulted  int
	TruckTypes map[string]int
	Time       time.Time
}

// Kind implements Event.
func (IngestEvent) Kind() string { return "ingest" }

// AssignmentEvent describes one truck placed by the engine. Entry holds the
// entry after assignment, show-up time included. Placements travel inside
// RunEvent so a run's notices are delivered or dropped together.
type AssignmentEvent struct {
	RunID      string
	Assignment model.Assignment
	Entry      model.ScheduleEntry
}

// Kind implements Event.
func (AssignmentEvent) Kind() string { return "assignment" }

// TypeCount is the per truck type outcome carried by RunEvent.
type TypeCount struct {
	Assigned   int
	Unassigned int
}

// RunEvent is published once an assignment run is complete.
type RunEvent struct {
	RunID      string
	Source     string
	Time       time.Time
	Assigned   int
	Unassigned int
	ByType     map[string]TypeCount
	Placements []AssignmentEvent
}

// Kind implements Event.
func (RunEvent) Kind() string { return "run" }
