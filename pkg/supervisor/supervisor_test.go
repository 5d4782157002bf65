package supervisor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCancellationStopsAllTasks(t *testing.T) {
	s := New(zap.NewNop())

	var started int32
	blocker := func(ctx context.Context) error {
		atomic.AddInt32(&started, 1)
		<-ctx.Done()
		return ctx.Err()
	}

	s.Add(
		Task{Name: "a", Policy: RestartOnFailure, Run: blocker},
		Task{Name: "b", Policy: RestartOnFailure, Run: blocker},
		Task{Name: "c", Policy: RestartNever, Run: blocker},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&started) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "clean shutdown must not report failures")
	case <-time.After(time.Second):
		t.Fatal("supervisor did not drain after cancellation")
	}
}

func TestRestartOnFailure(t *testing.T) {
	s := New(zap.NewNop())

	var runs int32
	s.Add(Task{
		Name:   "flaky",
		Policy: RestartOnFailure,
		Run: func(ctx context.Context) error {
			if atomic.AddInt32(&runs, 1) < 3 {
				return errors.New("boom")
			}
			return nil // settles on the third attempt
		},
	})

	err := s.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&runs))
}

func TestNeverRestartFailureCancelsSiblings(t *testing.T) {
	s := New(zap.NewNop())

	var siblingStopped int32
	s.Add(
		Task{
			Name:   "sibling",
			Policy: RestartOnFailure,
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				atomic.StoreInt32(&siblingStopped, 1)
				return ctx.Err()
			},
		},
		Task{
			Name:   "foreground",
			Policy: RestartNever,
			Run: func(ctx context.Context) error {
				return errors.New("listen failed")
			},
		},
	)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen failed")
	assert.Contains(t, err.Error(), "foreground")
	assert.Equal(t, int32(1), atomic.LoadInt32(&siblingStopped))
}

func TestCleanFinishDoesNotCancelSiblings(t *testing.T) {
	s := New(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var oneShotDone int32
	s.Add(
		Task{
			Name:   "one-shot",
			Policy: RestartOnFailure,
			Run: func(ctx context.Context) error {
				atomic.StoreInt32(&oneShotDone, 1)
				return nil
			},
		},
		Task{
			Name:   "long-lived",
			Policy: RestartOnFailure,
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
		},
	)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&oneShotDone) == 1
	}, time.Second, 5*time.Millisecond)

	// The long-lived task must still be running.
	select {
	case <-done:
		t.Fatal("supervisor exited while a task was still running")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestRestartPolicyString(t *testing.T) {
	assert.Equal(t, "never", RestartNever.String())
	assert.Equal(t, "onfailure", RestartOnFailure.String())

	p, err := RestartPolicyString("onfailure")
	require.NoError(t, err)
	assert.Equal(t, RestartOnFailure, p)
}
