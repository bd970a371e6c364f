// Package logger wraps slog with the typed event helpers the rest of the
// codebase logs through.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger embeds slog.Logger, so the full slog API stays available next to the
// event helpers below.
type Logger struct {
	*slog.Logger
}

// New builds the process logger for the given APP_ENV. Development gets
// human-readable text at debug level; everything else gets JSON at info.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// HTTPRequest logs one completed request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent records an authentication attempt. Failures carry a reason and
// log at warn; the reason must never contain credentials.
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	attrs := []any{
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", success),
	}
	if success {
		l.Info("auth_event", attrs...)
		return
	}
	l.Warn("auth_event", append(attrs, slog.String("reason", reason))...)
}

// SearchDegraded logs a search subsystem component that failed and returned
// its empty default instead of aborting the request.
func (l *Logger) SearchDegraded(component string, err error) {
	l.Warn("search_degraded",
		slog.String("component", component),
		slog.String("error", err.Error()),
	)
}

// TaskEvent records a background job finishing. Failures log at error.
func (l *Logger) TaskEvent(task string, success bool, detail string) {
	if success {
		l.Info("task_event", slog.String("task", task), slog.String("detail", detail))
		return
	}
	l.Error("task_event", slog.String("task", task), slog.String("detail", detail))
}

// RateLimitExceeded notes a request rejected by the IP limiter.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
