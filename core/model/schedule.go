package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNilSchedule is returned when an operation receives no schedule.
	ErrNilSchedule = errors.New("schedule data is nil")
	// ErrInconsistentIndex means the truck-type index does not match the entries.
	ErrInconsistentIndex = errors.New("truck type index out of sync with entries")
	// ErrMissingEntries is returned when decoding a payload without allEntries.
	ErrMissingEntries = errors.New("schedule payload has no allEntries")
)

// ScheduleData owns the flat list of entries. The grouping by truck type is
// an index of positions into that list, so an entry exists exactly once and
// every mutation goes through the list.
type ScheduleData struct {
	entries []ScheduleEntry
	index   map[string][]int
	order   []string
}

// NewScheduleData returns an empty schedule.
func NewScheduleData() *ScheduleData {
	return &ScheduleData{index: make(map[string][]int)}
}

// Add appends e and returns its position.
func (d *ScheduleData) Add(e ScheduleEntry) int {
	if d.index == nil {
		d.index = make(map[string][]int)
	}
	i := len(d.entries)
	d.entries = append(d.entries, e)
	if _, ok := d.index[e.TruckType]; !ok {
		d.order = append(d.order, e.TruckType)
	}
	d.index[e.TruckType] = append(d.index[e.TruckType], i)
	return i
}

// Len returns the number of entries.
func (d *ScheduleData) Len() int { return len(d.entries) }

// At returns a copy of the entry at position i.
func (d *ScheduleData) At(i int) ScheduleEntry { return d.entries[i] }

// Entries returns a copy of all entries in ingestion order.
func (d *ScheduleData) Entries() []ScheduleEntry {
	out := make([]ScheduleEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Update applies fn to the entry at position i. Changing the truck type
// rebuilds the index from list order: the entry keeps its list position
// within its new bucket, and bucket order follows first appearance in the
// list.
func (d *ScheduleData) Update(i int, fn func(*ScheduleEntry)) error {
	if i < 0 || i >= len(d.entries) {
		return fmt.Errorf("entry %d out of range (len %d)", i, len(d.entries))
	}
	before := d.entries[i].TruckType
	fn(&d.entries[i])
	if d.entries[i].TruckType != before {
		d.reindex()
	}
	return nil
}

// TruckTypes returns the bucket keys in first-encounter order.
func (d *ScheduleData) TruckTypes() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Indices returns the positions of the entries of the given truck type.
func (d *ScheduleData) Indices(truckType string) []int {
	idx := d.index[truckType]
	out := make([]int, len(idx))
	copy(out, idx)
	return out
}

// ByTruckType returns copies of the entries of one truck type.
func (d *ScheduleData) ByTruckType(truckType string) []ScheduleEntry {
	idx := d.index[truckType]
	out := make([]ScheduleEntry, len(idx))
	for j, i := range idx {
		out[j] = d.entries[i]
	}
	return out
}

// Buckets materialises the whole grouping.
func (d *ScheduleData) Buckets() map[string][]ScheduleEntry {
	out := make(map[string][]ScheduleEntry, len(d.order))
	for _, t := range d.order {
		out[t] = d.ByTruckType(t)
	}
	return out
}

// Validate checks that every entry sits in exactly one bucket matching its
// truck type.
func (d *ScheduleData) Validate() error {
	if d == nil {
		return ErrNilSchedule
	}
	seen := make([]bool, len(d.entries))
	if len(d.order) != len(d.index) {
		return fmt.Errorf("%w: %d keys ordered, %d indexed", ErrInconsistentIndex, len(d.order), len(d.index))
	}
	for t, idx := range d.index {
		for _, i := range idx {
			if i < 0 || i >= len(d.entries) {
				return fmt.Errorf("%w: position %d in %q", ErrInconsistentIndex, i, t)
			}
			if seen[i] {
				return fmt.Errorf("%w: entry %d indexed twice", ErrInconsistentIndex, i)
			}
			if d.entries[i].TruckType != t {
				return fmt.Errorf("%w: entry %d has type %q, bucket %q", ErrInconsistentIndex, i, d.entries[i].TruckType, t)
			}
			seen[i] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: entry %d not indexed", ErrInconsistentIndex, i)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d *ScheduleData) Clone() *ScheduleData {
	out := NewScheduleData()
	for _, e := range d.entries {
		out.Add(e)
	}
	return out
}

// Merge concatenates a and b. Shared truck types are concatenated bucket by
// bucket, a first. Nothing is de-duplicated.
func Merge(a, b *ScheduleData) *ScheduleData {
	out := NewScheduleData()
	for _, d := range []*ScheduleData{a, b} {
		if d == nil {
			continue
		}
		for _, e := range d.entries {
			out.Add(e)
		}
	}
	return out
}

func (d *ScheduleData) reindex() {
	entries := d.entries
	d.entries = nil
	d.index = make(map[string][]int)
	d.order = nil
	for _, e := range entries {
		d.Add(e)
	}
}

type scheduleJSON struct {
	AllEntries  []ScheduleEntry            `json:"allEntries"`
	ByTruckType map[string][]ScheduleEntry `json:"byTruckType"`
}

// MarshalJSON emits the {allEntries, byTruckType} shape consumed by the
// report and export views.
func (d *ScheduleData) MarshalJSON() ([]byte, error) {
	all := d.Entries()
	if all == nil {
		all = []ScheduleEntry{}
	}
	return json.Marshal(scheduleJSON{AllEntries: all, ByTruckType: d.Buckets()})
}

// UnmarshalJSON reads allEntries and rebuilds the index from it. The
// byTruckType member, when present, is treated as derived and ignored.
func (d *ScheduleData) UnmarshalJSON(b []byte) error {
	var raw struct {
		AllEntries *[]ScheduleEntry `json:"allEntries"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.AllEntries == nil {
		return ErrMissingEntries
	}
	d.entries = nil
	d.index = make(map[string][]int)
	d.order = nil
	for _, e := range *raw.AllEntries {
		d.Add(e)
	}
	return nil
}
