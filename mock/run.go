package mock

import (
	"context"

	"github.com/fwojciec/instrmap"
)

var _ instrmap.RunService = (*RunService)(nil)

// RunService is a mock implementation of instrmap.RunService.
type RunService struct {
	SaveMapFn       func(ctx context.Context, m *instrmap.InstructionMap) error
	FindLatestRunFn func(ctx context.Context) (*instrmap.Run, error)
	FindRunByIDFn   func(ctx context.Context, id string) (*instrmap.Run, error)
	LoadMapFn       func(ctx context.Context, runID string) (*instrmap.InstructionMap, error)
}

func (s *RunService) SaveMap(ctx context.Context, m *instrmap.InstructionMap) error {
	return s.SaveMapFn(ctx, m)
}

func (s *RunService) FindLatestRun(ctx context.Context) (*instrmap.Run, error) {
	return s.FindLatestRunFn(ctx)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*instrmap.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) LoadMap(ctx context.Context, runID string) (*instrmap.InstructionMap, error) {
	return s.LoadMapFn(ctx, runID)
}
