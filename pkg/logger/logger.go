package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps logrus with field helpers and rotating file output.
type Logger struct {
	*logrus.Logger
	fields logrus.Fields
}

// Options configures a Logger. File may be empty for stdout-only logging;
// the rotation fields are ignored in that case.
type Options struct {
	Level      string
	Format     string // json, text
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// NewLogger creates a logger writing to stdout and, when opts.File is set, to
// a rotated file as well.
func NewLogger(opts Options) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)
	setFormatter(log, opts.Format)

	if opts.File != "" {
		logDir := filepath.Dir(opts.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Printf("Failed to create log directory: %v\n", err)
		} else {
			fileLogger := &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSize,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAge,
				Compress:   opts.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
		}
	}

	return &Logger{
		Logger: log,
		fields: make(logrus.Fields),
	}
}

func setFormatter(log *logrus.Logger, format string) {
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// WithField returns a logger carrying an extra field on every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value
	return &Logger{Logger: l.Logger, fields: newFields}
}

// WithFields returns a logger carrying extra fields on every entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Logger{Logger: l.Logger, fields: newFields}
}

// WithComponent tags entries with the originating component.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.entry().Debugf(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.entry().Infof(msg, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string, args ...interface{}) {
	l.entry().Warningf(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.entry().Errorf(msg, args...)
}

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.entry().Fatalf(msg, args...)
}

func (l *Logger) entry() *logrus.Entry {
	return l.Logger.WithFields(l.fields)
}

// Writer returns an io.Writer for the logger.
func (l *Logger) Writer() io.Writer {
	return l.Logger.Writer()
}

// SetLogLevel dynamically sets the log level.
func (l *Logger) SetLogLevel(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(logLevel)
	return nil
}

// LedgerLogger logs a committed ledger fact.
func (l *Logger) LedgerLogger(event, actor, details string) {
	l.WithFields(map[string]interface{}{
		"event_type": "ledger",
		"event":      event,
		"actor":      actor,
		"details":    details,
	}).Info("Ledger fact committed")
}

// SecurityLogger logs an authorization failure or other security event.
func (l *Logger) SecurityLogger(event, principal, details string) {
	l.WithFields(map[string]interface{}{
		"event_type": "security",
		"event":      event,
		"principal":  principal,
		"details":    details,
	}).Warning("Security event logged")
}
