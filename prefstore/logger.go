package prefstore

// Logger is the structured logging abstraction the store reports
// through. The store only ever logs and proceeds: broken overlays,
// abandoned reloads and failed writes are swallowed at the API
// boundary, so the log is the one place they surface.
type Logger interface {
	// Debug logs a debug-level message with optional key-value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key-value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key-value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional key-value fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with additional fields.
	// The original logger is not modified.
	With(fields ...any) Logger
}
