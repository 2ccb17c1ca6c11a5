package telemetry

import "go.opentelemetry.io/otel/attribute"

// Metric attribute keys shared by the HTTP, database and idea instruments.
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrDBPoolState    = attribute.Key("db.pool.state")
	AttrLookupResult   = attribute.Key("lookup_result")
	AttrRejectReason   = attribute.Key("reject_reason")
)

// HTTPDurationBuckets are the request latency boundaries in seconds.
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
