// Package export writes a normalized schedule in the formats consumed by
// print and spreadsheet tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/kilianp07/haulplan/core/model"
	"github.com/kilianp07/haulplan/core/palette"
)

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{
	"id", "date", "shift", "job_name", "truck_type", "truck_driver", "time", "show_up_time",
	"location", "pit", "materials", "qty", "num_trucks", "interval", "show_up_offset", "notes", "color",
}

// WriteJSON writes the schedule in its {allEntries, byTruckType} shape.
func WriteJSON(w io.Writer, data *model.ScheduleData) error {
	if data == nil {
		return model.ErrNilSchedule
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes one line per entry in schedule order. The color column
// carries the display colour of the truck type.
func WriteCSV(w io.Writer, data *model.ScheduleData) error {
	if data == nil {
		return model.ErrNilSchedule
	}
	colors := palette.Map(data.TruckTypes())
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range data.Entries() {
		rec := []string{
			e.ID, e.Date, e.Shift, e.JobName, e.TruckType, e.TruckDriver, e.Time, e.ShowUpTime,
			e.Location, e.Pit, e.Materials, e.Qty,
			strconv.Itoa(e.NumTrucks), strconv.Itoa(e.Interval), strconv.Itoa(e.ShowUpOffset),
			e.Notes, colors[e.TruckType],
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ErrUnknownFormat is returned by Write for formats other than json and csv.
var ErrUnknownFormat = errors.New("export: unknown format")

// Write dispatches on format.
func Write(w io.Writer, format string, data *model.ScheduleData) error {
	switch format {
	case "json", "":
		return WriteJSON(w, data)
	case "csv":
		return WriteCSV(w, data)
	default:
		return ErrUnknownFormat
	}
}
