package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(job, truckType string) ScheduleEntry {
	return ScheduleEntry{JobName: job, TruckType: truckType, TruckDriver: Unassigned, NumTrucks: 1, ShowUpOffset: 15}
}

func TestScheduleData_AddIndexesByType(t *testing.T) {
	d := NewScheduleData()
	d.Add(entry("a", "Dump Truck"))
	d.Add(entry("b", "Slinger"))
	d.Add(entry("c", "Dump Truck"))

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"Dump Truck", "Slinger"}, d.TruckTypes())
	assert.Equal(t, []int{0, 2}, d.Indices("Dump Truck"))
	got := d.ByTruckType("Dump Truck")
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[1].JobName)
	require.NoError(t, d.Validate())
}

func TestScheduleData_UpdateIsVisibleThroughBuckets(t *testing.T) {
	d := NewScheduleData()
	i := d.Add(entry("a", "Dump Truck"))
	require.NoError(t, d.Update(i, func(e *ScheduleEntry) { e.TruckDriver = "94" }))
	assert.Equal(t, "94", d.ByTruckType("Dump Truck")[0].TruckDriver)
	assert.Equal(t, "94", d.At(i).TruckDriver)
}

func TestScheduleData_UpdateTruckTypeMovesEntry(t *testing.T) {
	d := NewScheduleData()
	d.Add(entry("a", "Dump Truck"))
	i := d.Add(entry("b", "Dump Truck"))
	require.NoError(t, d.Update(i, func(e *ScheduleEntry) { e.TruckType = "Slinger" }))
	assert.Equal(t, []int{0}, d.Indices("Dump Truck"))
	assert.Equal(t, []int{1}, d.Indices("Slinger"))
	require.NoError(t, d.Validate())

	assert.Error(t, d.Update(7, func(*ScheduleEntry) {}))
}

func TestScheduleData_UpdateTruckTypeKeepsListOrder(t *testing.T) {
	d := NewScheduleData()
	d.Add(entry("a", "Dump Truck"))
	d.Add(entry("b", "Slinger"))
	d.Add(entry("c", "Slinger"))
	require.NoError(t, d.Update(0, func(e *ScheduleEntry) { e.TruckType = "Slinger" }))

	assert.Equal(t, []int{0, 1, 2}, d.Indices("Slinger"), "moved entry sits at its list position, not the bucket end")
	assert.Equal(t, []string{"Slinger"}, d.TruckTypes())
	assert.Equal(t, "a", d.ByTruckType("Slinger")[0].JobName)

	require.NoError(t, d.Update(2, func(e *ScheduleEntry) { e.TruckType = "Dump Truck" }))
	assert.Equal(t, []string{"Slinger", "Dump Truck"}, d.TruckTypes(), "bucket order follows first appearance")
	require.NoError(t, d.Validate())
}

func TestScheduleData_ValidateDetectsCorruption(t *testing.T) {
	var nilData *ScheduleData
	assert.ErrorIs(t, nilData.Validate(), ErrNilSchedule)

	d := NewScheduleData()
	d.Add(entry("a", "Dump Truck"))
	d.index["Dump Truck"] = append(d.index["Dump Truck"], 0)
	assert.ErrorIs(t, d.Validate(), ErrInconsistentIndex)
}

func TestMerge(t *testing.T) {
	a := NewScheduleData()
	a.Add(entry("a1", "Dump Truck"))
	a.Add(entry("a2", "Slinger"))
	b := NewScheduleData()
	b.Add(entry("b1", "Tractor Trailer"))
	b.Add(entry("b2", "Dump Truck"))

	m := Merge(a, b)
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"Dump Truck", "Slinger", "Tractor Trailer"}, m.TruckTypes())
	dump := m.ByTruckType("Dump Truck")
	require.Len(t, dump, 2)
	assert.Equal(t, "a1", dump[0].JobName)
	assert.Equal(t, "b2", dump[1].JobName)

	twice := Merge(m, m)
	assert.Equal(t, 8, twice.Len())
	assert.Equal(t, 2, a.Len(), "inputs untouched")
}

func TestScheduleData_JSONBoundary(t *testing.T) {
	d := NewScheduleData()
	e := entry("a", "Dump Truck")
	e.Interval = 10
	d.Add(e)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	all := raw["allEntries"].([]any)
	first := all[0].(map[string]any)
	assert.Equal(t, "1", first["numTrucks"])
	assert.Equal(t, "10", first["interval"])
	assert.Equal(t, "15", first["showUpOffset"])
	assert.Contains(t, raw["byTruckType"], "Dump Truck")

	var back ScheduleData
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.Entries(), back.Entries())
	require.NoError(t, back.Validate())
}

func TestScheduleData_JSONEmpty(t *testing.T) {
	b, err := json.Marshal(NewScheduleData())
	require.NoError(t, err)
	assert.JSONEq(t, `{"allEntries":[],"byTruckType":{}}`, string(b))

	var d ScheduleData
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"byTruckType":{}}`), &d), ErrMissingEntries)
}

func TestScheduleEntry_IsUnassigned(t *testing.T) {
	assert.True(t, ScheduleEntry{}.IsUnassigned())
	assert.True(t, ScheduleEntry{TruckDriver: "TBD"}.IsUnassigned())
	assert.True(t, ScheduleEntry{TruckDriver: "  "}.IsUnassigned())
	assert.False(t, ScheduleEntry{TruckDriver: "94"}.IsUnassigned())
}

func TestDriverEntry_Assignable(t *testing.T) {
	ok := DriverEntry{ID: "94", Driver: "Ray", Status: StatusActive, TruckType: "Dump Truck"}
	assert.True(t, ok.Assignable())
	assert.Equal(t, LowestRank, ok.Rank())

	ok.Priority = PriorityOf(PrioritySubstitute)
	assert.Equal(t, 2, ok.Rank())

	for _, d := range []DriverEntry{
		{ID: "1", Driver: "Ray", Status: StatusOff, TruckType: "Dump Truck"},
		{ID: "2", Driver: "", Status: StatusActive, TruckType: "Dump Truck"},
		{ID: "3", Driver: "No Driver", Status: StatusActive, TruckType: "Dump Truck"},
		{ID: "4", Driver: "Not Assigned", Status: StatusActive, TruckType: "Dump Truck"},
		{ID: "5", Driver: "Ray", Status: StatusActive},
	} {
		assert.False(t, d.Assignable(), "driver %s", d.ID)
	}
}
