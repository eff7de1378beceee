package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/instrmap"
	"github.com/fwojciec/instrmap/mock"
	instrslog "github.com/fwojciec/instrmap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMapStore_SaveMap(t *testing.T) {
	t.Parallel()

	t.Run("logs save with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var saved *instrmap.InstructionMap
		inner := &mock.MapStore{
			SaveMapFn: func(_ context.Context, m *instrmap.InstructionMap) error {
				saved = m
				return nil
			},
		}

		m := instrmap.BuildMap([]string{"ADDPS addps", "MOVAPS movaps"})
		store := instrslog.NewLoggingMapStore(inner, "asm_instructions.csv", logger)
		err := store.SaveMap(context.Background(), m)

		require.NoError(t, err)
		assert.Same(t, m, saved)
		output := buf.String()
		assert.Contains(t, output, `msg="save map"`)
		assert.Contains(t, output, "store=asm_instructions.csv")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MapStore{
			SaveMapFn: func(_ context.Context, _ *instrmap.InstructionMap) error {
				return errors.New("disk full")
			},
		}

		store := instrslog.NewLoggingMapStore(inner, "out.csv", logger)
		err := store.SaveMap(context.Background(), instrmap.NewInstructionMap())

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}
