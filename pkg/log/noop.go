package log

// Noop implements Logger by discarding every message.
// It is the default for components constructed without an explicit logger.
type Noop struct{}

// NewNoop creates a no-op logger.
func NewNoop() Noop {
	return Noop{}
}

// Trace discards the message.
func (Noop) Trace(msg string, fields ...Field) {}

// Debug discards the message.
func (Noop) Debug(msg string, fields ...Field) {}

// Info discards the message.
func (Noop) Info(msg string, fields ...Field) {}

// Warn discards the message.
func (Noop) Warn(msg string, fields ...Field) {}

// Error discards the message.
func (Noop) Error(msg string, fields ...Field) {}
