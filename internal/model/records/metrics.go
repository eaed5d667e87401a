package records

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramOperationTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tracker",
		Subsystem: "records",
		Name:      "histogram_operation_time_seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"collection", "operation", "status"},
)

func observeOperation(collection, operation string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	histogramOperationTime.
		WithLabelValues(collection, operation, status).
		Observe(elapsed.Seconds())
}
