package zaplog

import (
	"go.uber.org/zap"

	"github.com/mapoio/prefstore/prefstore"
)

// zapLogger implements prefstore.Logger interface using Zap.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// Ensure zapLogger implements prefstore.Logger interface.
var _ prefstore.Logger = (*zapLogger)(nil)

// New wraps a zap logger into the prefstore.Logger facade. Fields are
// passed through as sugared key-value pairs.
func New(logger *zap.Logger) prefstore.Logger {
	// Skip one frame so log sites point at the store, not this shim.
	return &zapLogger{sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *zapLogger) Debug(msg string, fields ...any) { l.sugar.Debugw(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...any)  { l.sugar.Infow(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...any)  { l.sugar.Warnw(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...any) { l.sugar.Errorw(msg, fields...) }

func (l *zapLogger) With(fields ...any) prefstore.Logger {
	return &zapLogger{sugar: l.sugar.With(fields...)}
}
