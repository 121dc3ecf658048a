package source

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/haulplan/core/factory"
	coresource "github.com/kilianp07/haulplan/core/source"
)

// XLSXDecoder reads one worksheet whose first row holds the column names.
type XLSXDecoder struct {
	// Sheet selects the worksheet; empty means the first one.
	Sheet string `json:"sheet"`
}

func newXLSXDecoder(conf map[string]any) (coresource.Decoder, error) {
	d := &XLSXDecoder{}
	if err := factory.Decode(conf, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Decode implements source.Decoder.
func (d *XLSXDecoder) Decode(ctx context.Context, r io.Reader) ([]coresource.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	sheet := d.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}
	header := cleanHeader(cells[0])
	var rows []coresource.Row
	for _, rec := range cells[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row := makeRow(header, rec); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
