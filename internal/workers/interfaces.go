// Package workers runs the background jobs of the client, such as the
// periodic push of unsaved drafts, under one start and stop lifecycle.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Start must not block; Stop waits until the
// job has returned.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// IntervalJob is a job that takes its period at start.
type IntervalJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
