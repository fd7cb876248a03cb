package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelOverride replaces the level check of the wrapped core, so a logger
// derived from the global one can be more verbose than the shared atomic level.
type levelOverride struct {
	zapcore.Core

	// enabler decides which entries reach the wrapped core.
	enabler zapcore.LevelEnabler
}

// Enabled reports whether entries at l pass the override.
func (o *levelOverride) Enabled(l zapcore.Level) bool {
	return o.enabler.Enabled(l)
}

// Level lets zapcore.LevelOf see the override instead of the wrapped level.
func (o *levelOverride) Level() zapcore.Level {
	return zapcore.LevelOf(o.enabler)
}

// Check bypasses the wrapped core's own level check.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (o *levelOverride) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !o.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, o)
}

// With keeps the override on child cores.
//
//nolint:ireturn,nolintlint // zapcore.Core is what zap expects back.
func (o *levelOverride) With(fields []zapcore.Field) zapcore.Core {
	return &levelOverride{
		Core:    o.Core.With(fields),
		enabler: o.enabler,
	}
}

// WithLevel wraps the logger core so that enabler alone decides what is
// written. `walk-buddy --verbose` uses it to log at debug level regardless of
// the configured log_level.
//
//nolint:ireturn,nolintlint // zap.Option is what zap expects back.
func WithLevel(enabler zapcore.LevelEnabler) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelOverride{
			Core:    core,
			enabler: enabler,
		}
	})
}
