package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker runs a background loop until the context is cancelled
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker drives a job round by round, a failing round backs off to
// ErrDelay before the next try
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick tick the job until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	dur := time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err == nil {
				dur = w.delay()
			} else {
				dur = w.errDelay()
			}
		}
	}
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay > 0 {
		return w.Delay
	}

	return 100 * time.Millisecond
}

func (w *TickWorker) errDelay() time.Duration {
	if w.ErrDelay > 0 {
		return w.ErrDelay
	}

	return 500 * time.Millisecond
}

// IJob cron driven job interface
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob cron driven job, rounds never overlap
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}
