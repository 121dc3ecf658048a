package schedule

import (
	"net/http"
	"time"

	"github.com/kilianp07/haulplan/core/history"
)

// NewHistoryHandler returns an HTTP handler exposing assignment runs via
// GET /api/history. start and end are RFC3339 timestamps.
func NewHistoryHandler(store history.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := history.Query{
			Truck:     r.URL.Query().Get("truck"),
			TruckType: r.URL.Query().Get("truck_type"),
		}
		for name, dst := range map[string]*time.Time{"start": &q.Start, "end": &q.End} {
			s := r.URL.Query().Get(name)
			if s == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				http.Error(w, "invalid "+name+" time", http.StatusBadRequest)
				return
			}
			*dst = t
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []history.RunRecord{}
		}
		writeJSON(w, records)
	})
}
