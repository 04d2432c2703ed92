// Package logging provides the structured logging abstraction used by the
// lendtrack collaborators (store, API, commands). The computation packages
// never log; everything around them does, through this interface.
package logging

// Logger is a leveled, structured logger. Derived loggers carry their
// fields and error into every entry they write.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// Fatal exits the process after logging.
	Fatal(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one key/value pair of a structured entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
