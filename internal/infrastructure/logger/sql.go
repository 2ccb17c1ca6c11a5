package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowSQL = 200 * time.Millisecond

// SQLLogConfig controls which GORM statements reach the log.
type SQLLogConfig struct {
	Level gormlogger.LogLevel
	// SlowThreshold marks statements as slow; zero means 200ms, negative
	// turns slow statement warnings off.
	SlowThreshold time.Duration
	// LogNotFound also reports gorm.ErrRecordNotFound, which is an ordinary
	// outcome of lookups by id.
	LogNotFound bool
}

// SQLLogger adapts zap to gormlogger.Interface. Statements are logged at
// debug, slow ones at warn and failed ones at error.
type SQLLogger struct {
	base *zap.Logger
	cfg  SQLLogConfig
}

var _ gormlogger.Interface = (*SQLLogger)(nil)

// NewSQLLogger returns a GORM logger writing to base under the "sql" name.
func NewSQLLogger(base *zap.Logger, cfg SQLLogConfig) *SQLLogger {
	if cfg.SlowThreshold == 0 {
		cfg.SlowThreshold = defaultSlowSQL
	}
	return &SQLLogger{base: base.Named("sql"), cfg: cfg}
}

// LogMode returns a copy logging at level.
func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.cfg
	cfg.Level = level
	return &SQLLogger{base: l.base, cfg: cfg}
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, args)
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, args)
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, args)
}

func (l *SQLLogger) printf(ctx context.Context, floor gormlogger.LogLevel, lvl zapcore.Level, msg string, args []any) {
	if l.cfg.Level < floor {
		return
	}
	if ce := l.base.Check(lvl, fmt.Sprintf(msg, args...)); ce != nil {
		ce.Write(requestFields(ctx)...)
	}
}

// Trace logs one executed statement.
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	lvl, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}
	ce := l.base.Check(lvl, msg)
	if ce == nil {
		return
	}

	statement, rows := fc()
	fields := append(requestFields(ctx),
		zap.String("sql", statement),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

// classify picks the level and message for a statement, or reports false
// when the configured level drops it.
func (l *SQLLogger) classify(elapsed time.Duration, err error) (zapcore.Level, string, bool) {
	level := l.cfg.Level
	switch {
	case level <= gormlogger.Silent:
		return 0, "", false
	case err != nil:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && !l.cfg.LogNotFound {
			return 0, "", false
		}
		return zapcore.ErrorLevel, "sql failed", level >= gormlogger.Error
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && level >= gormlogger.Warn:
		return zapcore.WarnLevel, "slow sql over " + l.cfg.SlowThreshold.String(), true
	default:
		return zapcore.DebugLevel, "sql", level >= gormlogger.Info
	}
}

func requestFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := GetTraceID(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	return fields
}

// SQLLogLevel maps the application log level onto GORM's levels. Debug and
// info show every statement; anything unknown shows warnings and errors.
func SQLLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug", "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
