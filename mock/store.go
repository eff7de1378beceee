package mock

import (
	"context"

	"github.com/fwojciec/instrmap"
)

var _ instrmap.MapStore = (*MapStore)(nil)

// MapStore is a mock implementation of instrmap.MapStore.
type MapStore struct {
	SaveMapFn func(ctx context.Context, m *instrmap.InstructionMap) error
}

func (s *MapStore) SaveMap(ctx context.Context, m *instrmap.InstructionMap) error {
	return s.SaveMapFn(ctx, m)
}
