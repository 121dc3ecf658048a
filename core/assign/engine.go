package assign

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/logger"
	"github.com/kilianp07/haulplan/core/model"
)

// ErrNilDirectory is returned when Assign is called without a directory.
var ErrNilDirectory = errors.New("assign: nil driver directory")

// TypeResult counts the outcome for one truck type.
type TypeResult struct {
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
	// Candidates is the size of the matching pool before assignment.
	Candidates int `json:"candidates"`
}

// Result summarises one assignment run.
type Result struct {
	Assigned    int                   `json:"assigned"`
	Unassigned  int                   `json:"unassigned"`
	ByType      map[string]TypeResult `json:"byType"`
	Assignments []model.Assignment    `json:"assignments"`
}

// Engine assigns directory trucks to unassigned entries.
type Engine struct {
	classifier *fleet.Classifier
	log        logger.Logger
}

// NewEngine returns an Engine. The classifier is used to reset the show-up
// time of entries that receive a contractor truck.
func NewEngine(classifier *fleet.Classifier, log logger.Logger) *Engine {
	if classifier == nil {
		classifier = fleet.DefaultClassifier()
	}
	return &Engine{classifier: classifier, log: logger.OrNop(log)}
}

type candidate struct {
	d    model.DriverEntry
	rank int
}

// truckKey identifies a truck the way the directory index does.
func truckKey(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// buildPool returns the unused candidates matching truckType, best rank
// first. Ties keep directory order. A truck listed twice enters the pool
// once, as its first listing.
func buildPool(truckType string, drivers []model.DriverEntry, used map[string]bool) []candidate {
	var pool []candidate
	seen := make(map[string]bool)
	for _, d := range drivers {
		key := truckKey(d.ID)
		if used[key] || seen[key] || !fleet.SameTruckType(truckType, d.TruckType) {
			continue
		}
		seen[key] = true
		pool = append(pool, candidate{d: d, rank: d.Rank()})
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].rank < pool[j].rank })
	return pool
}

// Assign fills unassigned entries of data in place and reports what it did.
// Entries already carrying a truck are left alone, so running it again on
// a fully assigned schedule changes nothing.
func (e *Engine) Assign(data *model.ScheduleData, dir *fleet.Directory) (Result, error) {
	if data == nil {
		return Result{}, model.ErrNilSchedule
	}
	if dir == nil {
		return Result{}, ErrNilDirectory
	}
	if err := data.Validate(); err != nil {
		return Result{}, fmt.Errorf("assign: %w", err)
	}

	res := Result{ByType: make(map[string]TypeResult)}
	drivers := dir.Candidates()
	used := make(map[string]bool)

	for _, truckType := range data.TruckTypes() {
		pool := buildPool(truckType, drivers, used)
		tr := TypeResult{Candidates: len(pool)}
		for _, i := range data.Indices(truckType) {
			if !data.At(i).IsUnassigned() {
				continue
			}
			if len(pool) == 0 {
				tr.Unassigned++
				continue
			}
			c := pool[0]
			pool = pool[1:]
			used[truckKey(c.d.ID)] = true
			e.place(data, i, c.d)
			tr.Assigned++
			ent := data.At(i)
			res.Assignments = append(res.Assignments, model.Assignment{
				EntryID:   ent.ID,
				Truck:     c.d.ID,
				Driver:    c.d.Driver,
				JobName:   ent.JobName,
				TruckType: truckType,
			})
		}
		if tr.Unassigned > 0 {
			e.log.Warnf("%s: %d entries left unassigned, no matching trucks available", truckType, tr.Unassigned)
			unassignedEntries.WithLabelValues(truckType).Add(float64(tr.Unassigned))
		}
		assignmentsTotal.WithLabelValues(truckType).Add(float64(tr.Assigned))
		res.ByType[truckType] = tr
		res.Assigned += tr.Assigned
		res.Unassigned += tr.Unassigned
	}
	assignmentRuns.Inc()
	e.log.Infof("assignment run: %d assigned, %d unassigned across %d truck types", res.Assigned, res.Unassigned, len(res.ByType))
	return res, nil
}

func (e *Engine) place(data *model.ScheduleData, i int, d model.DriverEntry) {
	_ = data.Update(i, func(ent *model.ScheduleEntry) {
		ent.TruckDriver = d.ID
		ent.ShowUpTime = e.classifier.ShowUpTime(ent.Time, d.ID, ent.ShowUpOffset)
	})
	ent := data.At(i)
	e.log.Debugw("truck assigned", map[string]any{
		"truck":      d.ID,
		"driver":     d.Driver,
		"job":        ent.JobName,
		"truck_type": ent.TruckType,
		"show_up":    ent.ShowUpTime,
	})
}
