package observability

import (
	"encoding/json"
	"net/http"
)

// Route is the path the order-flow metrics snapshot is served on.
const Route = "/metrics"

// Handler serves the current metrics snapshot as JSON.
func Handler(metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := metrics.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})
}

// NewServer builds the standalone metrics listener, kept off the order-flow
// API so a dashboard poll never competes with customer traffic.
func NewServer(addr string, metrics *Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(Route, Handler(metrics))
	return &http.Server{Addr: addr, Handler: mux}
}
