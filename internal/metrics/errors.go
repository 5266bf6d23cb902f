package metrics

import (
	"strconv"

	"github.com/emcapi/emcapi/internal/observability"
)

// Gateway error metrics
const (
	GatewayErrorsTotal = "gateway_errors_total"
	GatewayPanicsTotal = "gateway_panics_total"
)

// RecordGatewayError records an error envelope written by the gateway,
// labelled by route pattern so cardinality stays bounded.
func RecordGatewayError(route, errorCode string, httpStatus int) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		GatewayErrorsTotal,
		1,
		map[string]string{
			"route":       route,
			"error_code":  errorCode,
			"http_status": strconv.Itoa(httpStatus),
		},
	)
}

// RecordPanic records a recovered panic
func RecordPanic() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(GatewayPanicsTotal, 1, nil)
	}
}
