package http

import (
	"net/http"
	"time"

	"github.com/midenpay/notewarden/internal/adapter"
	"github.com/midenpay/notewarden/internal/utils"
)

// withAnalytics forwards one event per handled request to the external
// collector. Forwarding is fire-and-forget inside the forwarder; this
// middleware adds no latency beyond building the event.
func (h *Handler) withAnalytics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		wallet, _ := utils.WalletFromContext(r.Context())

		h.analytics.Forward(adapter.Event{
			TraceID:   lw.Header().Get(traceIDHeader),
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    lw.Status(),
			Wallet:    wallet,
			Duration:  time.Since(start).Milliseconds(),
			Timestamp: start,
		})
	})
}
