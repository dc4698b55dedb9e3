package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartTickStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &TickWorker{Delay: time.Millisecond, ErrDelay: time.Millisecond}

	ticks := 0
	err := w.StartTick(ctx, func(ctx context.Context) error {
		ticks++
		if ticks >= 3 {
			cancel()
		}
		return nil
	})

	assert.Equal(t, context.Canceled, err)
	assert.True(t, ticks >= 3)
}

func TestTickWorkerDelays(t *testing.T) {
	w := &TickWorker{}
	assert.Equal(t, 100*time.Millisecond, w.delay())
	assert.Equal(t, 500*time.Millisecond, w.errDelay())

	w = &TickWorker{Delay: time.Second, ErrDelay: 2 * time.Second}
	assert.Equal(t, time.Second, w.delay())
	assert.Equal(t, 2*time.Second, w.errDelay())
}

func TestBaseJobRun(t *testing.T) {
	runs := 0
	job := &BaseJob{OnWork: func() error {
		runs++
		return nil
	}}

	job.Run()
	assert.Equal(t, 1, runs)

	// a round already in flight is skipped
	job.IsRunning = true
	job.Run()
	assert.Equal(t, 1, runs)
}
