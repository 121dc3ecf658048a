package source

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	coresource "github.com/kilianp07/haulplan/core/source"
)

func decode(t *testing.T, format, data string) []coresource.Row {
	t.Helper()
	src, err := coresource.FromReader(format, strings.NewReader(data))
	require.NoError(t, err)
	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	return rows
}

func TestCSV(t *testing.T) {
	data := "\ufeffTask Name, Truck Type (drop down) ,Time (short text),Number of Trucks (number)\n" +
		"Route 9,Dump Truck,07:00,3\n" +
		"\"Main St, east\",Slinger,8:30 AM\n" +
		",,,\n"
	rows := decode(t, "csv", data)
	require.Len(t, rows, 2)
	assert.Equal(t, "Route 9", rows[0]["Task Name"])
	assert.Equal(t, "Dump Truck", rows[0]["Truck Type (drop down)"])
	assert.Equal(t, "3", rows[0]["Number of Trucks (number)"])
	assert.Equal(t, "Main St, east", rows[1]["Task Name"])
	_, ok := rows[1]["Number of Trucks (number)"]
	assert.False(t, ok, "short row leaves missing columns out")
}

func TestCSV_EmptyAndHeaderOnly(t *testing.T) {
	assert.Empty(t, decode(t, "csv", ""))
	assert.Empty(t, decode(t, "csv", "Task Name,Time (short text)\n"))
}

func TestCSV_Delimiter(t *testing.T) {
	dec, err := coresource.NewDecoder("csv", map[string]any{"delimiter": ";"})
	require.NoError(t, err)
	rows, err := dec.Decode(context.Background(), strings.NewReader("Task Name;L\nJob;2\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0]["L"])

	_, err = coresource.NewDecoder("csv", map[string]any{"delimiter": ";;"})
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	data := `[{"Task Name":"Route 9","Number of Trucks (number)":2,"Interval Between Trucks (minutes)":10.5,"Notes":null,"Flag":true}]`
	rows := decode(t, "json", data)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0]["Number of Trucks (number)"])
	assert.Equal(t, "10.5", rows[0]["Interval Between Trucks (minutes)"])
	assert.Equal(t, "true", rows[0]["Flag"])
	_, ok := rows[0]["Notes"]
	assert.False(t, ok)

	wrapped := decode(t, "json", `{"rows":[{"Task Name":"A"},{"Task Name":"B"}]}`)
	assert.Len(t, wrapped, 2)
	assert.Empty(t, decode(t, "json", "  "))
}

func TestJSON_Invalid(t *testing.T) {
	src, err := coresource.FromReader("json", strings.NewReader(`[{"Task Name":`))
	require.NoError(t, err)
	_, err = src.Rows(context.Background())
	assert.Error(t, err)
}

func TestXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Task Name", "Truck Type (drop down)", "L"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Route 9", "Dump Truck", "2"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Bridge", "Slinger"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	src, err := coresource.FromReader("xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Route 9", rows[0]["Task Name"])
	assert.Equal(t, "2", rows[0]["L"])
	assert.Equal(t, "Slinger", rows[1]["Truck Type (drop down)"])
}

func TestXLSX_NamedSheetMissing(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	dec, err := coresource.NewDecoder("xlsx", map[string]any{"sheet": "Schedule"})
	require.NoError(t, err)
	_, err = dec.Decode(context.Background(), bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "xlsx"}, coresource.Formats())
	_, err := coresource.FromReader("pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, coresource.ErrUnsupportedFormat)
	assert.Equal(t, "xlsx", coresource.FormatFromPath("/tmp/Schedule.XLSX"))
}
