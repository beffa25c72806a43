// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Request-scoped loggers travel in the context so that
// handlers, services and stores log with the same correlation fields.
package logger
