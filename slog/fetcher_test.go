package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/instrmap/mock"
	instrslog "github.com/fwojciec/instrmap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs url, size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<table></table>", nil
			},
		}

		f := instrslog.NewLoggingFetcher(inner, logger)
		html, err := f.Fetch(context.Background(), "https://example.com/x86/")

		require.NoError(t, err)
		assert.Equal(t, "<table></table>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/x86/")
		assert.Contains(t, output, "bytes=15")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("HTTP 503 for https://example.com/x86/")
			},
		}

		f := instrslog.NewLoggingFetcher(inner, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/x86/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="HTTP 503 for https://example.com/x86/"`)
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		var closed bool
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		f := instrslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		require.NoError(t, f.Close())
		assert.True(t, closed)
	})
}
