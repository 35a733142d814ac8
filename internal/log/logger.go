// Package log is dcedit's logging facade. It keeps a small package-level API
// (Info, Debugf, Warn, ...) over a logrus backend so call sites never import
// logrus directly.
package log

import (
	"io"
	"os"
	"sync"

	"dcedit/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair
type Field struct {
	Key   string
	Value interface{}
}

// F creates a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus entry with the fields collected so far
type Logger struct {
	entry *logrus.Entry
}

// Option configures a Logger
type Option func(*logrus.Logger)

// WithOutput directs log output to w
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithJSON switches to JSON lines with timestamp/level/message keys
func WithJSON() Option {
	return func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}
}

// NewLogger creates a logger writing key=value text to stderr unless
// options say otherwise
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	for _, opt := range opts {
		opt(l)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

// SetDebug toggles debug output for every logger
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	isDebug = debug
}

// Configure replaces the package logger
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data)}
}

func (l *Logger) Info(msg string)                           { l.entry.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.entry.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.entry.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs only when debug output is enabled
func (l *Logger) Debug(msg string) {
	if debugEnabled() {
		l.entry.Debug(msg)
	}
}

// Debugf logs a formatted message only when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if debugEnabled() {
		l.entry.Debugf(format, args...)
	}
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger with err and, for application
// errors, its kind and subject attached
func LogWithError(err error) *Logger {
	return current().With(errorFields(err)...)
}

// LogError logs msg at error level with err attached
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var entryErr *errors.EntryError
	if errors.As(err, &entryErr) && entryErr.Key() != "" {
		fields = append(fields, F("key", entryErr.Key()))
	}
	return fields
}

func Info(msg string) {
	current().Info(msg)
}

func Infof(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Debug logs a message when debug output is enabled
func Debug(msg string) {
	current().Debug(msg)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Warn logs a warning message
func Warn(msg string) {
	current().Warn(msg)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs an error message
func Error(msg string) {
	current().Error(msg)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}
