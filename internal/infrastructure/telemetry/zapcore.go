package telemetry

import (
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap/zapcore"
)

// ZapCore returns a core that ships entries at or above level to the log
// provider. Without a log provider it returns a no-op core.
func (p *Providers) ZapCore(name string, level zapcore.Level) zapcore.Core {
	if p.logs == nil {
		return zapcore.NewNopCore()
	}
	return minLevelCore{
		Core:  otelzap.NewCore(name, otelzap.WithLoggerProvider(p.logs)),
		level: level,
	}
}

// minLevelCore puts a level floor on the otelzap core, which accepts everything.
type minLevelCore struct {
	zapcore.Core
	level zapcore.Level
}

func (c minLevelCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.level && c.Core.Enabled(lvl)
}

func (c minLevelCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if entry.Level < c.level {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c minLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return minLevelCore{Core: c.Core.With(fields), level: c.level}
}
