// Package schedule exposes schedule planning, the driver directory and the
// run history over HTTP.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/kilianp07/haulplan/app"
	"github.com/kilianp07/haulplan/core/source"
	"github.com/kilianp07/haulplan/pkg/export"
)

// Planner runs a schedule through ingestion and assignment.
type Planner interface {
	Plan(ctx context.Context, req app.PlanRequest) (*app.PlanResult, error)
}

var contentFormats = map[string]string{
	"text/csv":         "csv",
	"application/csv":  "csv",
	"application/json": "json",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
}

// NewPlanHandler returns the handler for POST /api/schedule. The body is
// either the raw export or a multipart form with a "file" field. Query
// parameters: format (csv, json, xlsx; otherwise taken from the file name or
// content type), assign (bool) and output (json or csv).
func NewPlanHandler(p Planner, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		doAssign := false
		if s := q.Get("assign"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				http.Error(w, "invalid assign parameter", http.StatusBadRequest)
				return
			}
			doAssign = v
		}
		output := q.Get("output")
		if output != "" && output != "json" && output != "csv" {
			http.Error(w, "invalid output parameter", http.StatusBadRequest)
			return
		}
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		req := app.PlanRequest{Source: q.Get("source"), Format: q.Get("format"), Assign: doAssign}
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "multipart/form-data" {
			f, hdr, err := r.FormFile("file")
			if err != nil {
				writeError(w, err, http.StatusBadRequest)
				return
			}
			defer func() { _ = f.Close() }()
			req.Reader = f
			if req.Source == "" {
				req.Source = hdr.Filename
			}
		} else {
			req.Reader = r.Body
			if req.Format == "" && req.Source == "" {
				req.Format = contentFormats[ct]
			}
		}
		if req.Source == "" {
			req.Source = "upload"
		}

		res, err := p.Plan(r.Context(), req)
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}
		if output == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			if err := export.WriteCSV(w, res.Schedule); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, res)
	})
}

// writeError maps known errors to a status and falls back to def.
func writeError(w http.ResponseWriter, err error, def int) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		def = http.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrUnsupportedFormat):
		def = http.StatusUnsupportedMediaType
	case errors.Is(err, app.ErrNoInput), errors.Is(err, io.EOF):
		def = http.StatusBadRequest
	}
	http.Error(w, err.Error(), def)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
