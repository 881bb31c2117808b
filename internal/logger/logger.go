package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger wraps logrus.Entry to provide structured logging with context support.
type Logger struct {
	*logrus.Entry
	closer io.Closer
}

// Options configures a Logger. Zero values fall back to sensible defaults.
type Options struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	ServiceName string

	// Output overrides every other destination when set.
	Output io.Writer

	// File enables a rotated log file in addition to stdout.
	File     string
	FileOnly bool

	// Rotation, in megabytes and days.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultOptions returns options for JSON logging at info level to stdout.
func DefaultOptions() Options {
	return Options{
		Level:       "info",
		Format:      "json",
		ServiceName: "solarmatch",
		MaxSizeMB:   100,
		MaxBackups:  7,
		MaxAgeDays:  30,
		Compress:    true,
	}
}

// New creates a Logger from opts.
// Parameters:
//   - opts: logger options; empty fields use DefaultOptions values.
//
// Returns:
//   - *Logger: initialized logger instance. Call Close to release a log file.
func New(opts Options) *Logger {
	def := DefaultOptions()
	if opts.Level == "" {
		opts.Level = def.Level
	}
	if opts.ServiceName == "" {
		opts.ServiceName = def.ServiceName
	}

	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportCaller(true)
	log.SetFormatter(newFormatter(opts.Format))

	l := &Logger{}
	switch {
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	case opts.File != "":
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, def.MaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, def.MaxBackups),
			MaxAge:     orDefault(opts.MaxAgeDays, def.MaxAgeDays),
			Compress:   opts.Compress,
		}
		l.closer = rotated
		if opts.FileOnly {
			log.SetOutput(rotated)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, rotated))
		}
	default:
		log.SetOutput(os.Stdout)
	}

	l.Entry = log.WithField("service", opts.ServiceName)
	return l
}

func newFormatter(format string) logrus.Formatter {
	if strings.EqualFold(format, "text") {
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  timestampFormat,
			CallerPrettyfier: callerPrettyfier,
		}
	}
	return &logrus.JSONFormatter{
		TimestampFormat: timestampFormat,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: callerPrettyfier,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close releases the rotated log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// WithFields returns a new Logger with additional fields.
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{Entry: l.Entry.WithFields(logrus.Fields(fields)), closer: l.closer}
}

// WithField returns a new Logger with a single additional field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value), closer: l.closer}
}

// WithError returns a new Logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Entry: l.Entry.WithError(err), closer: l.closer}
}

// callerPrettyfier trims the caller down to package.Func and file:line.
func callerPrettyfier(frame *runtime.Frame) (function string, file string) {
	funcName := frame.Function
	if idx := strings.LastIndex(funcName, "/"); idx != -1 {
		funcName = funcName[idx+1:]
	}
	return funcName, filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

var (
	defaultLogger   = New(DefaultOptions())
	defaultLoggerMu sync.RWMutex
)

// Default returns the process-wide logger.
func Default() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. A nil l is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultLoggerMu.Lock()
	defaultLogger = l
	defaultLoggerMu.Unlock()
}

// Info logs at Info level on the default logger.
func Info(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Warn logs at Warn level on the default logger.
func Warn(format string, args ...interface{}) {
	Default().Warnf(format, args...)
}

// Error logs at Error level on the default logger.
func Error(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Fatal logs at Fatal level on the default logger and exits.
func Fatal(format string, args ...interface{}) {
	Default().Fatalf(format, args...)
}

// CtxDebug logs at Debug level with the fields carried by ctx.
func CtxDebug(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Debugf(format, args...)
}

// CtxInfo logs at Info level with the fields carried by ctx.
func CtxInfo(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Infof(format, args...)
}

// CtxWarn logs at Warn level with the fields carried by ctx.
func CtxWarn(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Warnf(format, args...)
}

// CtxError logs at Error level with the fields carried by ctx.
func CtxError(ctx context.Context, format string, args ...interface{}) {
	FromContext(ctx).Errorf(format, args...)
}
