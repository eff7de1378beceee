// Package slog provides log/slog decorators for instrmap services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/instrmap"
)

// Ensure LoggingMapStore implements instrmap.MapStore.
var _ instrmap.MapStore = (*LoggingMapStore)(nil)

// LoggingMapStore wraps a MapStore with logging.
type LoggingMapStore struct {
	next   instrmap.MapStore
	name   string
	logger *slog.Logger
}

// NewLoggingMapStore creates a new LoggingMapStore. name identifies the
// store in log lines, e.g. the output path.
func NewLoggingMapStore(next instrmap.MapStore, name string, logger *slog.Logger) *LoggingMapStore {
	return &LoggingMapStore{next: next, name: name, logger: logger}
}

// SaveMap delegates to the wrapped store and logs the operation.
func (s *LoggingMapStore) SaveMap(ctx context.Context, m *instrmap.InstructionMap) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save map",
			"store", s.name,
			"count", m.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveMap(ctx, m)
}
