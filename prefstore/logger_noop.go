package prefstore

// noopLogger is a no-op implementation of Logger interface.
type noopLogger struct{}

// NewNoOpLogger creates a new no-op Logger implementation.
func NewNoOpLogger() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(msg string, fields ...any) {}
func (l *noopLogger) Info(msg string, fields ...any)  {}
func (l *noopLogger) Warn(msg string, fields ...any)  {}
func (l *noopLogger) Error(msg string, fields ...any) {}
func (l *noopLogger) With(fields ...any) Logger       { return l }
