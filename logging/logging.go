// Package logging provides the single process-wide leveled logger used
// throughout anvesha-crawler: a package-level go-kit/log logfmt logger,
// configured once at startup and safe for concurrent use.
package logging

import (
	"os"
	"time"

	kitlog "github.com/go-kit/log"
)

var logger kitlog.Logger

func init() {
	Init(os.Stderr)
}

// Init (re)configures the package logger to write logfmt lines to w. Called
// once by the CLI entrypoint; tests may call it again to redirect output.
func Init(w interface {
	Write(p []byte) (n int, err error)
}) {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(base, "ts", kitlog.TimestampFormat(time.Now, time.RFC3339), "caller", kitlog.DefaultCaller)
}

// Debug logs a debug-level structured line.
func Debug(msg string, kv ...interface{}) {
	logger.Log(append([]interface{}{"level", "debug", "msg", msg}, kv...)...)
}

// Info logs an info-level structured line.
func Info(msg string, kv ...interface{}) {
	logger.Log(append([]interface{}{"level", "info", "msg", msg}, kv...)...)
}

// Warn logs a warn-level structured line.
func Warn(msg string, kv ...interface{}) {
	logger.Log(append([]interface{}{"level", "warn", "msg", msg}, kv...)...)
}

// Error logs an error-level structured line.
func Error(msg string, kv ...interface{}) {
	logger.Log(append([]interface{}{"level", "error", "msg", msg}, kv...)...)
}
