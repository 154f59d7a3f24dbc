// Package logger is a thin printf-style wrapper around logrus shared by
// every VibeCraft component. Call InitLog once at process start; every
// subsequent Info/Warn/Error/Debug call writes through the same entry.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu    sync.RWMutex
	entry = logrus.NewEntry(logrus.StandardLogger())
	file  *os.File
)

// InitLog points the logger at path in addition to stderr. An empty path
// leaves logging on stderr only.
func InitLog(path string) error {
	mu.Lock()
	defer mu.Unlock()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if path == "" {
		entry = logrus.NewEntry(logrus.StandardLogger())
		return nil
	}

	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	file = f
	logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	entry = logrus.NewEntry(logrus.StandardLogger())
	return nil
}

// FlushLog syncs and closes the backing log file, if any.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Sync()
		_ = file.Close()
		file = nil
	}
}

// SetLevel adjusts the minimum severity logged (debug, info, warn, error).
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	logrus.SetLevel(lvl)
}

func current() *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return entry
}

func Debug(format string, args ...interface{}) { current().Debugf(format, args...) }
func Info(format string, args ...interface{})  { current().Infof(format, args...) }
func Warn(format string, args ...interface{})  { current().Warnf(format, args...) }
func Error(format string, args ...interface{}) { current().Errorf(format, args...) }
func Fatal(format string, args ...interface{}) { current().Fatalf(format, args...) }

// WithField returns a derived entry carrying a structured field, for
// call sites that want one log line to carry e.g. a request id.
func WithField(key string, value interface{}) *logrus.Entry {
	return current().WithField(key, value)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}
