package telemetry

import (
	"fmt"
	"net/http"

	"clawboard/internal/metrics"
)

// StartMetricsServer exposes Prometheus metrics on the given port.
// Blocks; run it in a goroutine.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", port), mux)
}
