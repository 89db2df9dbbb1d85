// Package logger is a thin context-first wrapper around a zap SugaredLogger.
package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu   sync.RWMutex
	base = zap.NewNop().Sugar()
)

// Init installs the process logger. Verbose enables debug and info output,
// otherwise only warnings and errors are written to stderr.
func Init(verbose bool) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	Set(zap.New(core).Sugar())
}

// Set replaces the process logger (tests use zaptest / observer loggers)
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// WithFields returns a context whose log lines carry the given key/value pairs
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, from(ctx).With(kv...))
}

func from(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debugf logs at debug level with the fields carried by ctx
func Debugf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Debugf(format, args...)
}

// Infof logs at info level with the fields carried by ctx
func Infof(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Infof(format, args...)
}

// Warnf logs at warn level with the fields carried by ctx
func Warnf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Warnf(format, args...)
}

// Sync flushes buffered log entries
func Sync() {
	_ = from(nil).Sync()
}
