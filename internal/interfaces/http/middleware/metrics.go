package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
)

var (
	requestSizeBuckets  = []float64{64, 128, 256, 512, 1024, 4096, 16384, 65536, 1048576}
	responseSizeBuckets = []float64{128, 256, 512, 1024, 2048, 4096, 16384, 65536, 262144, 1048576}
)

type httpInstruments struct {
	requests     metric.Int64Counter
	inFlight     metric.Int64UpDownCounter
	latency      metric.Float64Histogram
	requestSize  metric.Float64Histogram
	responseSize metric.Float64Histogram
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)
	if in.requests, err = meter.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if in.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in flight"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if in.latency, err = meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(telemetry.HTTPDurationBuckets...),
	); err != nil {
		return nil, err
	}
	if in.requestSize, err = meter.Float64Histogram("http_server_request_size_bytes",
		metric.WithDescription("HTTP request body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(requestSizeBuckets...),
	); err != nil {
		return nil, err
	}
	if in.responseSize, err = meter.Float64Histogram("http_server_response_size_bytes",
		metric.WithDescription("HTTP response body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(responseSizeBuckets...),
	); err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics records request count, latency, body sizes and in-flight
// requests on meter, labelled by method and route template. A nil meter, or
// one that cannot create the instruments, yields a pass-through handler.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	if meter == nil {
		return passThrough
	}
	in, err := newHTTPInstruments(meter)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		in.inFlight.Add(ctx, 1)
		defer in.inFlight.Add(ctx, -1)

		c.Next()

		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		route := telemetry.AttrHTTPRoute.String(routePattern(c))

		in.requests.Add(ctx, 1, metric.WithAttributes(method, route,
			telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())))

		// histograms omit the status code
		byRoute := metric.WithAttributes(method, route)
		in.latency.Record(ctx, time.Since(start).Seconds(), byRoute)
		if n := c.Request.ContentLength; n > 0 {
			in.requestSize.Record(ctx, float64(n), byRoute)
		}
		if n := c.Writer.Size(); n > 0 {
			in.responseSize.Record(ctx, float64(n), byRoute)
		}
	}
}

// routePattern reports "/api/v1/sections/:id" rather than the raw path
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

func passThrough(c *gin.Context) {
	c.Next()
}
