package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kilianp07/haulplan/core/fleet"
	"github.com/kilianp07/haulplan/core/model"
)

// NewDirectoryHandler serves the driver directory on /api/directory.
// GET lists entries, filtered by truck_type, status and assignable. PUT
// replaces the directory with the JSON array in the body.
func NewDirectoryHandler(st fleet.DirectoryStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listDirectory(w, r, st)
		case http.MethodPut:
			var entries []model.DriverEntry
			if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
				http.Error(w, "invalid directory: "+err.Error(), http.StatusBadRequest)
				return
			}
			for i := range entries {
				if entries[i].Status == "" {
					entries[i].Status = model.StatusActive
				}
			}
			if err := st.Save(r.Context(), entries); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func listDirectory(w http.ResponseWriter, r *http.Request, st fleet.DirectoryStore) {
	q := r.URL.Query()
	truckType := q.Get("truck_type")
	status := model.DriverStatus(q.Get("status"))
	var assignable *bool
	if s := q.Get("assignable"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid assignable parameter", http.StatusBadRequest)
			return
		}
		assignable = &v
	}

	entries, err := st.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]model.DriverEntry, 0, len(entries))
	for _, e := range entries {
		if truckType != "" && !fleet.SameTruckType(e.TruckType, truckType) {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		if assignable != nil && e.Assignable() != *assignable {
			continue
		}
		out = append(out, e)
	}
	writeJSON(w, out)
}
