package tracewire

import "log"

// Logger interface used by tracewire to report internal state such as
// swallowed extraction failures.
type Logger interface {
	Log(keyvals ...interface{}) error
}

// LoggerFunc is an adapter to allow the use of ordinary functions as
// Loggers.
type LoggerFunc func(...interface{}) error

// Log implements Logger by calling f(keyvals...).
func (f LoggerFunc) Log(keyvals ...interface{}) error { return f(keyvals...) }

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return LoggerFunc(func(...interface{}) error { return nil })
}

// LogWrapper wraps a stdlib logger into the tracewire Logger interface.
func LogWrapper(l *log.Logger) Logger {
	return LoggerFunc(func(keyvals ...interface{}) error {
		l.Println(keyvals...)
		return nil
	})
}
