package schedule

import (
	"net/http"

	"github.com/kilianp07/haulplan/app"
	"github.com/kilianp07/haulplan/config"
	"github.com/kilianp07/haulplan/infra/metrics"
)

// RequireToken rejects requests without "Authorization: Bearer <token>".
// An empty token disables the check.
func RequireToken(token string, h http.Handler) http.Handler {
	if token == "" {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// NewMux registers the API routes for svc.
func NewMux(svc *app.Service, cfg config.HTTPConfig) *http.ServeMux {
	mux := http.NewServeMux()
	maxBytes := int64(cfg.MaxUploadMB) << 20
	mux.Handle("/api/schedule", RequireToken(cfg.Token, NewPlanHandler(svc, maxBytes)))
	mux.Handle("/api/directory", RequireToken(cfg.Token, NewDirectoryHandler(svc.Directory())))
	mux.Handle("/api/history", RequireToken(cfg.Token, NewHistoryHandler(svc.History())))
	mux.Handle("/metrics", metrics.Handler(nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
