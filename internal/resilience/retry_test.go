package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	t.Parallel()
	calls := 0
	val, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransient(t *testing.T) {
	t.Parallel()
	calls := 0
	val, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewTransientError(eris.New("status 503"), 503)
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	t.Parallel()
	calls := 0
	_, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "", eris.New("status 404")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	_, err := Do(context.Background(), fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		return "", NewTransientError(eris.New("status 500"), 500)
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoRespectsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, fastConfig(), "op", func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", NewTransientError(eris.New("status 500"), 500)
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsTransient(t *testing.T) {
	t.Parallel()
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(NewTransientError(eris.New("rate limited"), 429)))
	assert.True(t, IsTransient(eris.New("read tcp: connection reset by peer")))
	assert.True(t, IsTransient(eris.New("dial tcp: i/o timeout")))
	assert.False(t, IsTransient(eris.New("status 404")))
	// Wrapped transient errors are still detected.
	assert.True(t, IsTransient(eris.Wrap(NewTransientError(eris.New("busy"), 503), "fetch")))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	t.Parallel()
	for _, code := range []int{429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "code %d", code)
	}
	for _, code := range []int{200, 301, 400, 404, 418} {
		assert.False(t, IsTransientHTTPStatus(code), "code %d", code)
	}
}
