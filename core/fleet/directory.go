package fleet

import (
	"context"
	"strings"

	"github.com/kilianp07/haulplan/core/model"
)

// DefaultSlingerBases are the truck numbers that exist both as a regular
// truck and as an "s" slinger variant with its own directory entry.
var DefaultSlingerBases = []string{"92", "94", "95", "96"}

// DirectoryStore persists the driver directory.
type DirectoryStore interface {
	Load(ctx context.Context) ([]model.DriverEntry, error)
	Save(ctx context.Context, entries []model.DriverEntry) error
}

// Directory is an immutable snapshot of the driver directory with lookup
// helpers.
type Directory struct {
	entries []model.DriverEntry
	byID    map[string]int
	slinger map[string]bool
}

// NewDirectory indexes entries. When slingerBases is empty the defaults
// apply. Duplicate ids resolve to the first entry.
func NewDirectory(entries []model.DriverEntry, slingerBases ...string) *Directory {
	if len(slingerBases) == 0 {
		slingerBases = DefaultSlingerBases
	}
	d := &Directory{
		entries: append([]model.DriverEntry(nil), entries...),
		byID:    make(map[string]int, len(entries)),
		slinger: make(map[string]bool, len(slingerBases)),
	}
	for i, e := range d.entries {
		key := strings.ToLower(strings.TrimSpace(e.ID))
		if _, ok := d.byID[key]; !ok {
			d.byID[key] = i
		}
	}
	for _, b := range slingerBases {
		d.slinger[b] = true
	}
	return d
}

// Entries returns a copy of the directory in its stored order.
func (d *Directory) Entries() []model.DriverEntry {
	return append([]model.DriverEntry(nil), d.entries...)
}

// Len returns the number of trucks on file.
func (d *Directory) Len() int { return len(d.entries) }

// Lookup finds an entry by id, case-insensitively.
func (d *Directory) Lookup(id string) (model.DriverEntry, bool) {
	i, ok := d.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return model.DriverEntry{}, false
	}
	return d.entries[i], true
}

// DriverForTruck resolves a truck id as written on a schedule ("SMI94S",
// "94s", "94P") to its directory entry. Slinger-capable bases are looked up
// with an "s" suffix when the slinger flag is set. Ids that do not parse as
// a truck number are looked up verbatim.
func (d *Directory) DriverForTruck(id string) (model.DriverEntry, bool) {
	n := ParseTruckNumber(id)
	if !n.Valid() {
		return d.Lookup(id)
	}
	key := n.Base
	if d.slinger[n.Base] && n.Slinger {
		key += "s"
	}
	return d.Lookup(key)
}

// Candidates returns the entries the engine may assign, in directory order.
func (d *Directory) Candidates() []model.DriverEntry {
	var out []model.DriverEntry
	for _, e := range d.entries {
		if e.Assignable() {
			out = append(out, e)
		}
	}
	return out
}
