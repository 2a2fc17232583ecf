// Package logging provides the structured logging collaborator used by the
// priority-inheritance core and its demo harness. It keeps the teacher's
// leveled, field-based Logger shape (component name, Field helpers) but
// backs it with zap instead of a hand-rolled writer.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured key-value pair, same shape as the teacher's
// kernel/utils.Field, translated to a zap.Field at the call site.
type Field = zap.Field

// Re-export the teacher's field constructors so call sites read exactly
// like kernel/utils: logging.String(...), logging.Int(...), logging.Err(...).
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Uint64   = zap.Uint64
	Uint8    = zap.Uint8
	Uint32   = zap.Uint32
	Bool     = zap.Bool
	Err      = zap.Error
	Duration = zap.Duration
	Any      = zap.Any
)

// Logger is the interface the priority-inheritance core depends on. It is
// deliberately narrow — every error-table entry in the spec logs through one
// of these four calls, never more.
type Logger interface {
	Debugw(msg string, fields ...Field)
	Infow(msg string, fields ...Field)
	Warnw(msg string, fields ...Field)
	Errorw(msg string, fields ...Field)
	// Named returns a child logger carrying an extra component tag, the
	// way the teacher's Logger.With appends fields.
	Named(component string) Logger
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a Logger at the given level with a short, human console
// encoding by default — matching the teacher's colorized console output
// rather than raw JSON, since this core runs on a single box, not a fleet.
func New(component string, level zapcore.Level) Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	base, err := cfg.Build()
	if err != nil {
		// zap construction failure is a misconfiguration, not a runtime
		// condition this core degrades around; fall back to a no-op core
		// so callers never see a nil Logger.
		base = zap.NewNop()
	}
	return &zapLogger{l: base.Named(component)}
}

// Nop returns a Logger that discards everything, for tests that don't care.
func Nop() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func (z *zapLogger) Debugw(msg string, fields ...Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Infow(msg string, fields ...Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warnw(msg string, fields ...Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Errorw(msg string, fields ...Field) { z.l.Error(msg, fields...) }

func (z *zapLogger) Named(component string) Logger {
	return &zapLogger{l: z.l.Named(component)}
}
