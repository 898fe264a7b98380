package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	req := require.New(t)
	bo := NewExponential(time.Millisecond, 8*time.Millisecond)
	ctx := context.Background()

	wants := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
		8 * time.Millisecond,
		8 * time.Millisecond,
		8 * time.Millisecond,
	}
	for _, want := range wants {
		req.Equal(want, bo.NextDuration)
		req.NoError(bo.Backoff(ctx))
	}

	bo.Reset()
	req.Equal(time.Millisecond, bo.NextDuration)
}

func TestBackoffCancellation(t *testing.T) {
	req := require.New(t)
	bo := NewExponential(time.Minute, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bo.Backoff(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("backoff did not abort on cancellation")
	}

	// an interrupted backoff must not advance the schedule
	req.Equal(time.Minute, bo.NextDuration)
}

func TestLinearBackoff(t *testing.T) {
	req := require.New(t)
	bo := NewLinear(time.Millisecond, 3*time.Millisecond)
	ctx := context.Background()

	req.Equal(time.Duration(0), bo.NextDuration)
	req.NoError(bo.Backoff(ctx))
	req.Equal(time.Millisecond, bo.NextDuration)
	req.NoError(bo.Backoff(ctx))
	req.Equal(2*time.Millisecond, bo.NextDuration)
}
