// Package source defines the raw row shape read from spreadsheet and CSV
// exports, and a registry of format decoders.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kilianp07/haulplan/core/factory"
)

// ErrUnsupportedFormat is returned for formats without a registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported row format")

// Row maps column names to cell text.
type Row map[string]string

// Get returns the trimmed value of the first alias present with a non-blank
// value.
func (r Row) Get(aliases ...string) string {
	for _, a := range aliases {
		if v, ok := r[a]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// Has reports whether any alias is present with a non-blank value.
func (r Row) Has(aliases ...string) bool { return r.Get(aliases...) != "" }

// Decoder turns an encoded file into rows.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) ([]Row, error)
}

// RowSource yields the rows of one upload.
type RowSource interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Static is a RowSource over rows already in memory.
type Static []Row

// Rows implements RowSource.
func (s Static) Rows(context.Context) ([]Row, error) { return s, nil }

type readerSource struct {
	dec Decoder
	r   io.Reader
}

func (s readerSource) Rows(ctx context.Context) ([]Row, error) { return s.dec.Decode(ctx, s.r) }

var registry = factory.NewRegistry[Decoder]()

// Register adds a decoder factory for the given format name.
func Register(format string, f factory.Factory[Decoder]) error {
	return registry.Register(strings.ToLower(format), f)
}

// NewDecoder builds the decoder registered for format.
func NewDecoder(format string, conf map[string]any) (Decoder, error) {
	format = strings.ToLower(format)
	if !registry.Has(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return registry.Create(factory.ModuleConfig{Type: format, Conf: conf})
}

// FromReader returns a RowSource decoding r with the decoder for format.
func FromReader(format string, r io.Reader) (RowSource, error) {
	dec, err := NewDecoder(format, nil)
	if err != nil {
		return nil, err
	}
	return readerSource{dec: dec, r: r}, nil
}

// FormatFromPath derives the format name from a file extension.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Formats lists the registered format names.
func Formats() []string { return registry.Names() }
