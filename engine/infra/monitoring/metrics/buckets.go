package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric exported by the service.
const Namespace = "users"

// HTTPDurationBuckets defines latency buckets for HTTP request duration metrics.
var HTTPDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// MetricNameWithSubsystem builds a fully qualified metric name under Namespace.
func MetricNameWithSubsystem(subsystem, name string) string {
	return prometheus.BuildFQName(Namespace, subsystem, name)
}
