package model

import "strings"

// Unassigned is the truck/driver sentinel for entries that still need a
// truck.
const Unassigned = "TBD"

// Shift labels produced by ingestion. Other values pass through verbatim.
const (
	ShiftFirst     = "1st"
	ShiftSecond    = "2nd"
	ShiftScheduled = "Scheduled"
	ShiftAny       = "Any"
)

// Defaults applied to the per-row numeric fields.
const (
	DefaultNumTrucks    = 1
	DefaultInterval     = 0
	DefaultShowUpOffset = 15
)

// ScheduleEntry is one truck's unit of work. NumTrucks, Interval and
// ShowUpOffset are integers in memory and strings on the wire.
type ScheduleEntry struct {
	ID           string `json:"id,omitempty"`
	JobName      string `json:"jobName"`
	TruckType    string `json:"truckType"`
	Pit          string `json:"pit"`
	Shift        string `json:"shift"`
	TruckDriver  string `json:"truckDriver"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ShowUpTime   string `json:"showUpTime"`
	Location     string `json:"location"`
	Qty          string `json:"qty"`
	Materials    string `json:"materials"`
	Notes        string `json:"notes"`
	NumTrucks    int    `json:"numTrucks,string"`
	Interval     int    `json:"interval,string"`
	ShowUpOffset int    `json:"showUpOffset,string"`
}

// IsUnassigned reports whether the entry still waits for a truck: the
// driver field is blank or holds the TBD sentinel.
func (e ScheduleEntry) IsUnassigned() bool {
	d := strings.TrimSpace(e.TruckDriver)
	return d == "" || d == Unassigned
}

// Assignment records one truck placed on an entry by the engine.
type Assignment struct {
	EntryID   string `json:"entryId,omitempty"`
	Truck     string `json:"truck"`
	Driver    string `json:"driver"`
	JobName   string `json:"jobName"`
	TruckType string `json:"truckType"`
}
