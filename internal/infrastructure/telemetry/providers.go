package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultExportInterval = time.Minute
	shutdownTimeout       = 10 * time.Second
)

// Settings selects which signals are exported to the OTLP collector.
type Settings struct {
	ServiceName string
	Endpoint    string // host:port of the collector's gRPC receiver
	Insecure    bool

	Traces        bool
	SamplingRatio float64

	Metrics        bool
	ExportInterval time.Duration

	Logs bool
}

// Option swaps an OTLP exporter for a caller supplied component.
type Option func(*sinks)

type sinks struct {
	metricReader sdkmetric.Reader
	logProcessor sdklog.Processor
}

// WithMetricReader collects metrics through reader, e.g. sdkmetric.NewManualReader.
func WithMetricReader(reader sdkmetric.Reader) Option {
	return func(s *sinks) { s.metricReader = reader }
}

// WithLogProcessor hands log records to processor instead of the collector.
func WithLogProcessor(processor sdklog.Processor) Option {
	return func(s *sinks) { s.logProcessor = processor }
}

// Providers owns the SDK providers of the enabled signals. A disabled signal
// keeps a nil provider and callers fall back to the global no-op one.
type Providers struct {
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *sdklog.LoggerProvider
	log     *zap.Logger
}

// Start builds a provider for every enabled signal. Providers exporting to
// the collector are installed as the otel globals; injected sinks are not.
func Start(ctx context.Context, s Settings, log *zap.Logger, opts ...Option) (*Providers, error) {
	var in sinks
	for _, opt := range opts {
		opt(&in)
	}

	p := &Providers{log: log}
	if !s.Traces && !s.Metrics && !s.Logs {
		log.Info("Telemetry export disabled")
		return p, nil
	}

	res, err := newResource(s.ServiceName)
	if err != nil {
		return nil, err
	}

	if s.Traces {
		if err := p.startTraces(ctx, s, res); err != nil {
			return nil, err
		}
	}
	if s.Metrics {
		if err := p.startMetrics(ctx, s, res, in.metricReader); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if s.Logs {
		if err := p.startLogs(ctx, s, res, in.logProcessor); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}

	log.Info("Telemetry export started",
		zap.String("endpoint", s.Endpoint),
		zap.String("service_name", s.ServiceName),
		zap.Bool("traces", p.traces != nil),
		zap.Bool("metrics", p.metrics != nil),
		zap.Bool("logs", p.logs != nil),
	)
	return p, nil
}

func (p *Providers) startTraces(ctx context.Context, s Settings, res *resource.Resource) error {
	exporter, err := newSpanExporter(ctx, s)
	if err != nil {
		return err
	}
	p.traces = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(s.SamplingRatio)),
	)
	otel.SetTracerProvider(p.traces)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (p *Providers) startMetrics(ctx context.Context, s Settings, res *resource.Resource, reader sdkmetric.Reader) error {
	if reader != nil {
		p.metrics = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
		return nil
	}

	exporter, err := newMetricExporter(ctx, s)
	if err != nil {
		return err
	}
	interval := s.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	p.metrics = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(p.metrics)
	return nil
}

func (p *Providers) startLogs(ctx context.Context, s Settings, res *resource.Resource, processor sdklog.Processor) error {
	if processor != nil {
		p.logs = sdklog.NewLoggerProvider(sdklog.WithResource(res), sdklog.WithProcessor(processor))
		return nil
	}

	exporter, err := newLogExporter(ctx, s)
	if err != nil {
		return err
	}
	p.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(p.logs)
	return nil
}

// sampler honours the caller's sampling decision and applies ratio to root spans
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func (p *Providers) TracesEnabled() bool  { return p.traces != nil }
func (p *Providers) MetricsEnabled() bool { return p.metrics != nil }
func (p *Providers) LogsEnabled() bool    { return p.logs != nil }

// Tracer returns a tracer of the trace provider, or of the global one when
// traces are disabled.
func (p *Providers) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if p.traces == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return p.traces.Tracer(name, opts...)
}

// Meter returns a meter of the metric provider, or of the global one when
// metrics are disabled.
func (p *Providers) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if p.metrics == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return p.metrics.Meter(name, opts...)
}

// Shutdown flushes and stops every running provider. It waits at most
// shutdownTimeout regardless of ctx.
func (p *Providers) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	stop := func(signal string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			p.log.Error("Telemetry provider shutdown failed", zap.String("signal", signal), zap.Error(err))
			errs = append(errs, fmt.Errorf("shutdown %s provider: %w", signal, err))
		}
	}

	if p.traces != nil {
		stop("traces", p.traces.Shutdown)
	}
	if p.metrics != nil {
		stop("metrics", p.metrics.Shutdown)
	}
	if p.logs != nil {
		stop("logs", p.logs.Shutdown)
	}
	return errors.Join(errs...)
}
