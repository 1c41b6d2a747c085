package task

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestRun_Success(t *testing.T) {
	t.Parallel()
	res := Run("fetch", func() (string, error) {
		time.Sleep(time.Millisecond)
		return "payload", nil
	})

	assert.True(t, res.OK)
	assert.Equal(t, "payload", res.Value)
	assert.Empty(t, res.Err)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()
	res := Run("extract", func() (int, error) {
		return 42, eris.New("connection refused")
	})

	assert.False(t, res.OK)
	assert.Zero(t, res.Value, "value must be zeroed on failure")
	assert.Contains(t, res.Err, "connection refused")
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(0))
}

func TestRun_DoesNotPropagate(t *testing.T) {
	t.Parallel()
	// A failing step must not abort the caller's loop.
	failures := 0
	for range 3 {
		res := Run("step", func() (struct{}, error) {
			return struct{}{}, eris.New("boom")
		})
		if !res.OK {
			failures++
		}
	}
	assert.Equal(t, 3, failures)
}
