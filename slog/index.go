package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/instrmap"
)

// Ensure LoggingIndexParser implements instrmap.IndexParser.
var _ instrmap.IndexParser = (*LoggingIndexParser)(nil)

// LoggingIndexParser wraps an IndexParser with logging.
type LoggingIndexParser struct {
	next   instrmap.IndexParser
	logger *slog.Logger
}

// NewLoggingIndexParser creates a new LoggingIndexParser.
func NewLoggingIndexParser(next instrmap.IndexParser, logger *slog.Logger) *LoggingIndexParser {
	return &LoggingIndexParser{next: next, logger: logger}
}

// ParseIndex delegates to the wrapped parser and logs the number of links.
func (p *LoggingIndexParser) ParseIndex(html string, baseURL string) (links []instrmap.InstructionLink, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse index",
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseIndex(html, baseURL)
}
