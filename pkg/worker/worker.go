// Package worker implements the code path inside the spawned process: decode
// the parameter payload, invoke the target factory, and submit the resulting
// job to the downstream queue. Nothing here retries; retry is a launcher-side
// concept.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/lukengu-deimos/background-job/pkg/queue"
	"github.com/lukengu-deimos/background-job/pkg/statuslog"
	"github.com/lukengu-deimos/background-job/pkg/telemetry"
)

// FactoryError reports a factory that failed to materialize a job, or a job
// that could not be submitted to the queue.
type FactoryError struct {
	Class  string
	Method string
	Cause  error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("worker: %s@%s: %v", e.Class, e.Method, e.Cause)
}

func (e *FactoryError) Unwrap() error { return e.Cause }

// EntryPoint materializes and enqueues one dispatched job.
type EntryPoint struct {
	driver    queue.Driver
	queueName string
	log       *statuslog.Logger
}

// NewEntryPoint creates an entry point submitting to the named queue.
func NewEntryPoint(driver queue.Driver, queueName string, logger *statuslog.Logger) *EntryPoint {
	return &EntryPoint{driver: driver, queueName: queueName, log: logger}
}

// Run executes one worker invocation. A non-nil return means the process
// must exit non-zero; the cause has already been logged to the error
// channel. Partial execution never happens: a decode failure aborts before
// the factory runs, a factory failure aborts before anything is enqueued.
func (e *EntryPoint) Run(ctx context.Context, class, method, payload string, delay, priority int) error {
	logger := telemetry.LoggerFromContext(ctx)
	logger.Info().Str("job", class+"@"+method).Msg("Materializing dispatched job")

	args, err := queue.DecodeParameters(payload)
	if err != nil {
		e.log.Error("decode payload for %s@%s: %v", class, method, err)
		return err
	}

	factory, err := queue.Resolve(class, method)
	if err != nil {
		e.log.Error("%v", err)
		return err
	}

	job, err := invokeFactory(factory, args)
	if err != nil {
		ferr := &FactoryError{Class: class, Method: method, Cause: err}
		e.log.Error("%s", ferr.Error())
		return ferr
	}

	job.SetPriority(priority)
	job.SetDelay(delay)

	if err := e.driver.Enqueue(ctx, e.queueName, job); err != nil {
		ferr := &FactoryError{Class: class, Method: method, Cause: fmt.Errorf("enqueue: %w", err)}
		e.log.Error("%s", ferr.Error())
		return ferr
	}

	e.log.Status("queued job %s@%s on %q (delay=%ds priority=%d)", class, method, e.queueName, delay, priority)
	return nil
}

// invokeFactory calls the factory, converting a panic into an error so a
// misbehaving job type cannot take down logging on the way out.
func invokeFactory(f queue.Factory, args []any) (job queue.Queueable, err error) {
	defer func() {
		if r := recover(); r != nil {
			job = nil
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()

	job, err = f(args...)
	if err == nil && job == nil {
		err = errors.New("factory returned no job")
	}
	return job, err
}
