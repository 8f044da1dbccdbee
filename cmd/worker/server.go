package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/sinks"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newMux serves /metrics and /health
func newMux(out *sinks.Sinks) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler(out))
	return mux
}

// healthHandler reports healthy unless a connected database stops answering.
// Sinks that were never connected do not affect health.
func healthHandler(out *sinks.Sinks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"status": "healthy"}
		code := http.StatusOK

		if out.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := out.DB.Health(ctx); err != nil {
				body["status"] = "unhealthy"
				body["database"] = err.Error()
				code = http.StatusServiceUnavailable
			} else {
				body["database"] = out.DB.PoolStats()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	}
}
