// Package history records what each assignment run did so that past
// schedules can be audited by truck or truck type.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/model"
)

// ErrUnknownBackend is returned for an unsupported history backend name.
var ErrUnknownBackend = errors.New("history: unknown backend")

// TypeCount is the outcome for one truck type.
type TypeCount struct {
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
}

// RunRecord captures one planning run.
type RunRecord struct {
	ID          string               `json:"id"`
	Timestamp   time.Time            `json:"timestamp"`
	Source      string               `json:"source"`
	Entries     int                  `json:"entries"`
	Assigned    int                  `json:"assigned"`
	Unassigned  int                  `json:"unassigned"`
	ByType      map[string]TypeCount `json:"by_type"`
	Assignments []model.Assignment   `json:"assignments"`
}

// Query defines filters for retrieving records. Zero fields match all.
type Query struct {
	Start     time.Time
	End       time.Time
	Truck     string
	TruckType string
}

// Match reports whether r passes every filter of q.
func (q Query) Match(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Truck != "" && !r.HasTruck(q.Truck) {
		return false
	}
	if q.TruckType != "" && !r.HasTruckType(q.TruckType) {
		return false
	}
	return true
}

// HasTruck reports whether the run assigned truck, ignoring case.
func (r RunRecord) HasTruck(truck string) bool {
	for _, a := range r.Assignments {
		if strings.EqualFold(a.Truck, truck) {
			return true
		}
	}
	return false
}

// HasTruckType reports whether the run touched truckType or one of its
// synonyms.
func (r RunRecord) HasTruckType(truckType string) bool {
	for tt := range r.ByType {
		if fleet.SameTruckType(tt, truckType) {
			return true
		}
	}
	return false
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q Query) ([]RunRecord, error)
	Close() error
}
