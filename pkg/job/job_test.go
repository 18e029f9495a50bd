package job_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/honlnm/biztime/pkg/job"
)

func TestService_RunsUntilCancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())

	s := job.NewService().
		RegisterJob("counter", time.Millisecond, func(context.Context) error {
			calls.Add(1)
			return nil
		}).
		Start(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	s.Stop()

	stopped := calls.Load()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, stopped, calls.Load())
}

func TestService_SurvivesErrorsAndPanics(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := job.NewService().
		RegisterJob("flaky", time.Millisecond, func(context.Context) error {
			if calls.Add(1)%2 == 0 {
				panic("boom")
			}

			return errors.New("failed")
		}).
		Start(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 4 }, time.Second, time.Millisecond)

	cancel()
	s.Stop()
}

func TestService_DisabledJob(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())

	s := job.NewService().
		RegisterJob("disabled", 0, func(context.Context) error {
			calls.Add(1)
			return nil
		}).
		Start(ctx)

	cancel()
	s.Stop()

	require.Zero(t, calls.Load())
}
