package queue

import (
	"context"
)

// Queueable is a job object ready for submission to the downstream queue.
// Factories return one; the worker entry point sets priority and delay on it
// before handing it to a Driver. Once enqueued the queue owns it.
type Queueable interface {
	SetPriority(priority int)
	SetDelay(seconds int)
	Priority() int
	Delay() int
	// Body returns the transport representation pushed to the queue backend.
	Body() ([]byte, error)
}

// Factory materializes a queueable job from the decoded dispatch arguments.
// It must not run the job's business logic.
type Factory func(args ...any) (Queueable, error)

// Driver defines the interface for downstream queue backends
type Driver interface {
	// Enqueue submits a materialized job to the named queue. Backends honor
	// the job's delay natively where they can; priority travels in the body.
	Enqueue(ctx context.Context, queueName string, job Queueable) error
}
