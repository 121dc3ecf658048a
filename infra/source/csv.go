package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kilianp07/haulplan/core/factory"
	coresource "github.com/kilianp07/haulplan/core/source"
)

// CSVDecoder reads a header row followed by data rows.
type CSVDecoder struct {
	Comma rune
}

type csvConf struct {
	Delimiter string `json:"delimiter"`
}

func newCSVDecoder(conf map[string]any) (coresource.Decoder, error) {
	var c csvConf
	if err := factory.Decode(conf, &c); err != nil {
		return nil, err
	}
	d := &CSVDecoder{Comma: ','}
	if c.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size != len(c.Delimiter) {
			return nil, fmt.Errorf("csv delimiter must be a single character, got %q", c.Delimiter)
		}
		d.Comma = r
	}
	return d, nil
}

// Decode implements source.Decoder. Short rows leave the missing columns
// out of the row; blank lines are skipped.
func (d *CSVDecoder) Decode(ctx context.Context, r io.Reader) ([]coresource.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = d.Comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	header = cleanHeader(header)
	var rows []coresource.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if row := makeRow(header, rec); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// cleanHeader trims column names and drops a UTF-8 byte order mark.
func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// makeRow zips header and cells. It returns nil when every cell is blank.
func makeRow(header, cells []string) coresource.Row {
	row := make(coresource.Row, len(header))
	blank := true
	for i, name := range header {
		if name == "" || i >= len(cells) {
			continue
		}
		row[name] = cells[i]
		if strings.TrimSpace(cells[i]) != "" {
			blank = false
		}
	}
	if blank {
		return nil
	}
	return row
}
