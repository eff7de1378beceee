package instrmap

import (
	"context"
	"time"
)

// Run records one saved scrape result.
type Run struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Entries     int       `json:"entries"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RunService stores scrape results and reads them back.
type RunService interface {
	MapStore

	// FindLatestRun returns the most recently saved run.
	// Returns ENOTFOUND if no run has been saved.
	FindLatestRun(ctx context.Context) (*Run, error)

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// LoadMap rebuilds the InstructionMap saved by a run, in its original order.
	// Returns ENOTFOUND if the run does not exist.
	LoadMap(ctx context.Context, runID string) (*InstructionMap, error)
}
