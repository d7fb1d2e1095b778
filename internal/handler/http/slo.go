package http

import (
	"net/http"

	"foundry-catchup/internal/handler/http/responsewriter"
	"foundry-catchup/internal/observability/slo"
)

// SLOMiddleware feeds every response status into the tracker so the
// availability and error-rate gauges reflect real traffic. Only 5xx
// responses count against the error budget.
func SLOMiddleware(tracker *slo.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := responsewriter.Wrap(w)
			next.ServeHTTP(rw, r)
			tracker.Record(rw.StatusCode())
		})
	}
}
