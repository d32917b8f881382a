// Package logger provides a printf-style leveled logging facade for the
// whole project, backed by logrus. Subsystems tag their lines with a
// bracketed prefix, e.g. logger.Info("[Coordinator] ...").
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.Mutex
	l    = logrus.New()
	file *os.File
)

func init() {
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
}

// InitLog configures the global logger to also write to the given file.
// An empty path keeps stderr-only logging.
func InitLog(path string) error {
	if path == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}

	file = f
	l.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// FlushLog closes the log file if one was opened by InitLog.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Sync()
		_ = file.Close()
		file = nil
		l.SetOutput(os.Stderr)
	}
}

// SetLevel sets the minimum level by name (debug/info/warn/error).
// Unknown names fall back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
}

// SetFormat switches between "text" and "json" output.
func SetFormat(format string) {
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
		return
	}
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
}

func Debug(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	l.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	l.Errorf(format, args...)
}

func Fatal(format string, args ...interface{}) {
	l.Fatalf(format, args...)
}
