package metrics

import (
	"strconv"
	"time"

	"github.com/emcapi/emcapi/internal/observability"
)

// Client-side request metrics following Prometheus conventions
const (
	RequestsTotal        = "emc_requests_total"
	RetriesTotal         = "emc_retries_total"
	TransportErrorsTotal = "emc_transport_errors_total"
	AdmissionWait        = "emc_admission_wait_ms"
	OperationsTotal      = "emc_operations_total"
)

// RecordAttempt records one network attempt and the status it returned
func RecordAttempt(statusCode int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			RequestsTotal,
			1,
			map[string]string{
				"status": strconv.Itoa(statusCode),
			},
		)
	}
}

// RecordRetry records a retry after a gateway timeout
func RecordRetry() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(RetriesTotal, 1, nil)
	}
}

// RecordTransportError records a request that failed below HTTP
func RecordTransportError() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(TransportErrorsTotal, 1, nil)
	}
}

// RecordAdmissionWait records time spent blocked by the rate limiter
func RecordAdmissionWait(d time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Histogram(AdmissionWait, d, nil)
	}
}

// RecordOperation records an endpoint call with its outcome
func RecordOperation(resource string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			OperationsTotal,
			1,
			map[string]string{
				"resource": resource,
				"status":   status,
			},
		)
	}
}
