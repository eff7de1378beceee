package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/instrmap/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

func TestRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Empty(t, crawl.RetryDelays(0))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.RetryDelays(3))
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "<html>content</html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x86/", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 4 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x86/", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 4, attempts)
	})

	t.Run("attempts once without delays", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("connection refused")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x86/", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("returns last error after max retries", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("persistent error")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x86/", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "persistent error")
		assert.Equal(t, 4, attempts)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetch := func(ctx context.Context, url string) (string, error) {
			return "", errors.New("boom")
		}

		_, _ = crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x86/", fetch, logger, []time.Duration{0})

		output := buf.String()
		assert.Contains(t, output, "retry")
		assert.Contains(t, output, "attempt=2")
		assert.Contains(t, output, "err=boom")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		fetch := func(ctx context.Context, url string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient error")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/x86/", fetch, nil, noDelays)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
