package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/haulplan/core/model"
	"github.com/kilianp07/haulplan/core/palette"
)

func sample() *model.ScheduleData {
	d := model.NewScheduleData()
	d.Add(model.ScheduleEntry{ID: "e1", JobName: "Route 9", TruckType: "Dump Truck", TruckDriver: "94", Time: "08:00", ShowUpTime: "07:45", NumTrucks: 2, Interval: 10, ShowUpOffset: 15})
	d.Add(model.ScheduleEntry{ID: "e2", JobName: "Bridge", TruckType: "Slinger", TruckDriver: model.Unassigned, Time: "09:00", ShowUpTime: "08:45", NumTrucks: 1, ShowUpOffset: 15})
	return d
}

func TestWriteJSON_BoundaryShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample()))

	var raw struct {
		AllEntries  []map[string]any            `json:"allEntries"`
		ByTruckType map[string][]map[string]any `json:"byTruckType"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.AllEntries, 2)
	assert.Equal(t, "2", raw.AllEntries[0]["numTrucks"])
	assert.Equal(t, "10", raw.AllEntries[0]["interval"])
	assert.Equal(t, "15", raw.AllEntries[0]["showUpOffset"])
	assert.Len(t, raw.ByTruckType["Slinger"], 1)

	back := model.NewScheduleData()
	require.NoError(t, json.Unmarshal(buf.Bytes(), back))
	assert.Equal(t, sample().Entries(), back.Entries())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	data := sample()
	require.NoError(t, WriteCSV(&buf, data))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, CSVHeader, recs[0])
	assert.Equal(t, "e1", recs[1][0])
	assert.Equal(t, "2", recs[1][12])
	assert.Equal(t, model.Unassigned, recs[2][5])
	assert.Equal(t, palette.ColorForType("Slinger", data.TruckTypes()), recs[2][16])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, "csv", sample()))
	assert.ErrorIs(t, Write(&buf, "pdf", sample()), ErrUnknownFormat)
	assert.ErrorIs(t, WriteJSON(&buf, nil), model.ErrNilSchedule)
	assert.ErrorIs(t, WriteCSV(&buf, nil), model.ErrNilSchedule)
}
