package workers

import (
	"context"
	"time"
)

type Workers struct {
	workers []Worker
}

func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts the workers in the order they were given.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

type every struct {
	job      IntervalJob
	interval time.Duration
}

// Every runs job with a fixed interval.
func Every(job IntervalJob, interval time.Duration) Worker {
	return every{job: job, interval: interval}
}

func (e every) Start(ctx context.Context) {
	e.job.Start(ctx, e.interval)
}

func (e every) Stop() {
	e.job.Stop()
}
