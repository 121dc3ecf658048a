// Package ingest turns spreadsheet rows into canonical schedule entries:
// field aliases, date and time normalisation, truck-count fan-out with
// staggered load times, and pit resolution.
package ingest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/logger"
	"github.com/kilianp07/haulplan/core/model"
	"github.com/kilianp07/haulplan/core/pit"
	"github.com/kilianp07/haulplan/core/source"
	"github.com/kilianp07/haulplan/core/timeutil"
)

// DefaultTruckType is used for rows with a blank truck type.
const DefaultTruckType = "Dump Truck"

// ErrNilSource is returned when IngestFrom is called without a source.
var ErrNilSource = errors.New("ingest: nil row source")

// DefaultMaxTrucksPerRow caps the truck count a single row may request.
const DefaultMaxTrucksPerRow = 200

// Config tunes the row defaults.
type Config struct {
	DefaultTruckType    string `json:"default_truck_type"`
	DefaultShowUpOffset *int   `json:"default_show_up_offset"`
	// MaxTrucksPerRow bounds the fan-out of a count-only row.
	MaxTrucksPerRow int `json:"max_trucks_per_row"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.DefaultTruckType == "" {
		c.DefaultTruckType = DefaultTruckType
	}
	if c.DefaultShowUpOffset == nil {
		off := model.DefaultShowUpOffset
		c.DefaultShowUpOffset = &off
	}
	if c.MaxTrucksPerRow <= 0 {
		c.MaxTrucksPerRow = DefaultMaxTrucksPerRow
	}
}

// Stats summarises one ingestion.
type Stats struct {
	Rows       int `json:"rows"`
	Entries    int `json:"entries"`
	TruckTypes int `json:"truck_types"`
	// Defaulted counts fields replaced by a default after a parse failure
	// or a blank truck type.
	Defaulted int `json:"defaulted"`
}

// Pipeline normalises rows into a ScheduleData.
type Pipeline struct {
	cfg        Config
	pits       *pit.Resolver
	classifier *fleet.Classifier
	log        logger.Logger
	newID      func() string
}

// New returns a Pipeline. Nil collaborators fall back to the built-in pit
// table, the built-in truck lists and a no-op logger.
func New(cfg Config, pits *pit.Resolver, classifier *fleet.Classifier, log logger.Logger) *Pipeline {
	cfg.SetDefaults()
	if pits == nil {
		pits = pit.Default()
	}
	if classifier == nil {
		classifier = fleet.DefaultClassifier()
	}
	return &Pipeline{cfg: cfg, pits: pits, classifier: classifier, log: logger.OrNop(log), newID: uuid.NewString}
}

// IngestFrom reads all rows of src and ingests them.
func (p *Pipeline) IngestFrom(ctx context.Context, src source.RowSource) (*model.ScheduleData, Stats, error) {
	if src == nil {
		return nil, Stats{}, ErrNilSource
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, Stats{}, err
	}
	data, st := p.Ingest(rows)
	return data, st, nil
}

// Ingest normalises rows. Malformed cells never fail the call: they are
// logged and replaced by their documented default. Zero rows give an empty
// schedule.
func (p *Pipeline) Ingest(rows []source.Row) (*model.ScheduleData, Stats) {
	data := model.NewScheduleData()
	st := Stats{Rows: len(rows)}
	for i, row := range rows {
		for _, e := range p.expandRow(i+1, row, &st) {
			data.Add(e)
		}
	}
	p.fillPits(data)
	st.Entries = data.Len()
	st.TruckTypes = len(data.TruckTypes())
	p.log.Infof("ingested %d rows into %d entries across %d truck types", st.Rows, st.Entries, st.TruckTypes)
	return data, st
}

func (p *Pipeline) fillPits(data *model.ScheduleData) {
	filled := p.pits.FillMissing(data.Entries())
	for i, e := range filled {
		pitCode := e.Pit
		_ = data.Update(i, func(cur *model.ScheduleEntry) { cur.Pit = pitCode })
	}
}

// rowFields carries the job level values shared by every entry of a row.
type rowFields struct {
	template  model.ScheduleEntry
	drivers   []string
	baseTime  string
	numTrucks int
	interval  int
	offset    int
}

func (p *Pipeline) readRow(n int, row source.Row, st *Stats) rowFields {
	truckType := row.Get(colTruckType...)
	if truckType == "" {
		p.log.Warnf("row %d: blank truck type, defaulting to %q", n, p.cfg.DefaultTruckType)
		truckType = p.cfg.DefaultTruckType
		st.Defaulted++
	}

	rawDate := row.Get(colDueDate...)
	date := rawDate
	var dateTime string
	if ts, ok := timeutil.ParseDate(rawDate); ok {
		date = timeutil.FormatDate(ts)
		dateTime = timeutil.EmbeddedTime(rawDate)
	} else if rawDate != "" {
		p.log.Warnf("row %d: unparsable due date %q kept verbatim", n, rawDate)
	}
	loadTime := row.Get(colTime...)
	if loadTime == "" {
		loadTime = dateTime
	}

	f := rowFields{
		template: model.ScheduleEntry{
			JobName:   row.Get(colJobName...),
			TruckType: truckType,
			Pit:       stripBrackets(row.Get(colPit...)),
			Shift:     NormalizeShift(row.Get(colShift...)),
			Date:      date,
			Location:  row.Get(colLocation...),
			Qty:       row.Get(colQty...),
			Materials: row.Get(colMaterials...),
			Notes:     row.Get(colNotes...),
		},
		drivers:   ParseDrivers(row.Get(colDrivers...)),
		baseTime:  timeutil.To24Hour(loadTime),
		numTrucks: p.intField(n, row, "number of trucks", colNumTrucks, model.DefaultNumTrucks, st),
		interval:  p.intField(n, row, "interval", colInterval, model.DefaultInterval, st),
		offset:    p.intField(n, row, "show-up offset", colShowUp, *p.cfg.DefaultShowUpOffset, st),
	}
	if f.numTrucks == 0 {
		p.log.Debugf("row %d: zero trucks requested, using %d", n, model.DefaultNumTrucks)
		f.numTrucks = model.DefaultNumTrucks
	}
	if f.numTrucks > p.cfg.MaxTrucksPerRow {
		p.log.Warnf("row %d: %d trucks requested, capping at %d", n, f.numTrucks, p.cfg.MaxTrucksPerRow)
		st.Defaulted++
		f.numTrucks = p.cfg.MaxTrucksPerRow
	}
	f.template.NumTrucks = f.numTrucks
	f.template.Interval = f.interval
	f.template.ShowUpOffset = f.offset
	return f
}

func (p *Pipeline) intField(n int, row source.Row, name string, aliases []string, def int, st *Stats) int {
	raw := row.Get(aliases...)
	if raw == "" {
		return def
	}
	v, ok := parseCount(raw)
	if !ok {
		p.log.Warnf("row %d: %s %q is not a number, using %d", n, name, raw, def)
		st.Defaulted++
		return def
	}
	return v
}

// expandRow fans a row out into entries. Named drivers win over a truck
// count; a lone TBD driver counts as no driver.
func (p *Pipeline) expandRow(n int, row source.Row, st *Stats) []model.ScheduleEntry {
	f := p.readRow(n, row, st)
	var trucks []string
	switch {
	case len(f.drivers) > 0 && f.drivers[0] != model.Unassigned:
		trucks = f.drivers
	case f.numTrucks > 1:
		trucks = make([]string, f.numTrucks)
		for i := range trucks {
			trucks[i] = model.Unassigned
		}
	default:
		trucks = []string{model.Unassigned}
	}

	out := make([]model.ScheduleEntry, 0, len(trucks))
	for i, truck := range trucks {
		e := f.template
		e.ID = p.newID()
		e.TruckDriver = truck
		e.Time = f.baseTime
		if i > 0 && f.interval > 0 && f.baseTime != "" {
			e.Time = timeutil.AddMinutes(f.baseTime, f.interval*i)
		}
		e.ShowUpTime = p.classifier.ShowUpTime(e.Time, truck, f.offset)
		out = append(out, e)
	}
	return out
}

// Merge combines two schedules without de-duplication.
func Merge(a, b *model.ScheduleData) *model.ScheduleData {
	return model.Merge(a, b)
}
