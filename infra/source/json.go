package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	coresource "github.com/kilianp07/haulplan/core/source"
)

// JSONDecoder reads an array of objects, or an object whose "rows" field
// holds that array. Numbers keep their source text and nulls are dropped.
type JSONDecoder struct{}

// Decode implements source.Decoder.
func (JSONDecoder) Decode(ctx context.Context, r io.Reader) ([]coresource.Row, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}
	var objs []map[string]any
	if b[0] == '{' {
		var wrapped struct {
			Rows []map[string]any `json:"rows"`
		}
		if err := decodeNumbers(b, &wrapped); err != nil {
			return nil, err
		}
		objs = wrapped.Rows
	} else if err := decodeNumbers(b, &objs); err != nil {
		return nil, err
	}
	rows := make([]coresource.Row, 0, len(objs))
	for _, o := range objs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make(coresource.Row, len(o))
		for k, v := range o {
			if s, ok := cellText(v); ok {
				row[k] = s
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeNumbers(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json rows: %w", err)
	}
	return nil
}

func cellText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
