// Package notify tells drivers about the trucks the engine assigned them.
package notify

import (
	"context"

	"github.com/kilianp07/haulplan/core/model"
)

// Notice is what a driver receives for one assignment.
type Notice struct {
	RunID      string `json:"run_id"`
	EntryID    string `json:"entry_id"`
	Truck      string `json:"truck"`
	Driver     string `json:"driver"`
	JobName    string `json:"job_name"`
	TruckType  string `json:"truck_type"`
	Date       string `json:"date"`
	LoadTime   string `json:"load_time"`
	ShowUpTime string `json:"show_up_time"`
	Location   string `json:"location,omitempty"`
	Pit        string `json:"pit,omitempty"`
}

// NewNotice builds the notice for an assignment and the entry it filled.
func NewNotice(runID string, a model.Assignment, e model.ScheduleEntry) Notice {
	return Notice{
		RunID:      runID,
		EntryID:    a.EntryID,
		Truck:      a.Truck,
		Driver:     a.Driver,
		JobName:    e.JobName,
		TruckType:  e.TruckType,
		Date:       e.Date,
		LoadTime:   e.Time,
		ShowUpTime: e.ShowUpTime,
		Location:   e.Location,
		Pit:        e.Pit,
	}
}

// Notifier delivers notices.
type Notifier interface {
	NotifyAssignment(ctx context.Context, n Notice) error
}

// Nop drops every notice.
type Nop struct{}

func (Nop) NotifyAssignment(context.Context, Notice) error { return nil }
