package logging

import (
	"context"
	"log/slog"
	"strings"
)

type runIDKey struct{}

// WithRunID returns a context carrying the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, strings.TrimSpace(id))
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with the run ID found in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	id, ok := RunIDFromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(String(FieldRunID, id))
}
