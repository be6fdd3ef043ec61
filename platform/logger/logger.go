// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// CompanyIDKey is the context key for the tenant (Moveware company) ID
	CompanyIDKey contextKey = "company_id"
)

// upstreamBodyLimit caps how much of an upstream response body is logged.
const upstreamBodyLimit = 300

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id and company_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("request_id", requestID)),
		}
	}

	if companyID, ok := ctx.Value(CompanyIDKey).(string); ok && companyID != "" {
		newLogger = newLogger.WithCompanyID(companyID)
	}

	return newLogger
}

// WithCompanyID returns a logger scoped to a tenant company.
func (l *Logger) WithCompanyID(companyID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("company_id", companyID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// UpstreamError logs a failed Moveware call with enough context to diagnose
// without leaking credentials. The body is truncated before logging.
func (l *Logger) UpstreamError(operation, url string, status int, body string, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("url", url),
		slog.Int("status", status),
		slog.String("body", TruncateBody(body)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Error("upstream_error", attrs...)
}

// MockFallback logs that a read path substituted the static mock dataset.
func (l *Logger) MockFallback(operation, companyID, reason string) {
	l.Warn("mock_fallback",
		slog.String("operation", operation),
		slog.String("company_id", companyID),
		slog.String("reason", reason),
	)
}

// BestEffortFailure logs a swallowed failure in a non-fatal step.
func (l *Logger) BestEffortFailure(step string, err error) {
	l.Warn("best_effort_step_failed",
		slog.String("step", step),
		slog.String("error", err.Error()),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

// TruncateBody clips an upstream response body for logs and error messages,
// backing off to a rune boundary so the clip never yields invalid UTF-8.
func TruncateBody(body string) string {
	if len(body) <= upstreamBodyLimit {
		return body
	}
	cut := upstreamBodyLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}
