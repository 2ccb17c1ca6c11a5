package telemetry

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/metric"
)

// RegisterDBPoolMetrics exposes connection pool statistics of sqlDB as
// observable gauges. The callback is unregistered with the returned function.
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (func() error, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connections}"),
	)
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_max_open_connections",
		metric.WithDescription("Maximum number of open database connections"),
		metric.WithUnit("{connections}"),
	)
	if err != nil {
		return nil, err
	}
	waitCount, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Total number of connections waited for"),
		metric.WithUnit("{waits}"),
	)
	if err != nil {
		return nil, err
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waitCount, stats.WaitCount)
		return nil
	}, connections, maxOpen, waitCount)
	if err != nil {
		return nil, err
	}

	return reg.Unregister, nil
}
