// Package analytics records product events such as contact form submissions.
// Callers depend on Tracker and never on a package-level client.
package analytics

import (
	"context"

	"go.uber.org/zap"
)

// Tracker records a named event with free-form properties.
type Tracker interface {
	Track(ctx context.Context, event string, props map[string]any) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Track(context.Context, string, map[string]any) error { return nil }

// LogTracker writes events to a zap logger. It is the fallback when no
// broker is configured.
type LogTracker struct {
	log *zap.Logger
}

// NewLogTracker builds a LogTracker.
func NewLogTracker(log *zap.Logger) *LogTracker {
	return &LogTracker{log: log}
}

func (t *LogTracker) Track(_ context.Context, event string, props map[string]any) error {
	t.log.Info("analytics event", zap.String("event", event), zap.Any("props", props))
	return nil
}
