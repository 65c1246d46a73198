// Package dispatch implements the launcher side of background job execution:
// validate the target, encode its arguments, and launch a detached worker
// process that materializes and enqueues the job. Failures never reach the
// caller; they are logged and retried up to a configured bound.
package dispatch

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/queue"
	"github.com/lukengu-deimos/background-job/pkg/spawn"
	"github.com/lukengu-deimos/background-job/pkg/statuslog"
)

// EnqueueCommand is the worker subcommand invoked in the spawned process.
const EnqueueCommand = "queue:enqueue"

// CommandBuilder composes the argument vector for a worker invocation. The
// worker binary path is resolved once at construction, not per call.
type CommandBuilder struct {
	workerBin string
}

// NewCommandBuilder resolves the worker binary path. An empty workerBin
// means the current executable.
func NewCommandBuilder(workerBin string) (*CommandBuilder, error) {
	if workerBin == "" {
		bin, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("dispatch: resolve worker binary: %w", err)
		}
		workerBin = bin
	}
	return &CommandBuilder{workerBin: workerBin}, nil
}

// Build returns the argv for one worker invocation. An argument vector, not
// an interpolated string: class and method have passed validation already,
// but they never touch a shell either way.
func (b *CommandBuilder) Build(class, method, payload string, delay, priority int) []string {
	return []string{
		b.workerBin,
		EnqueueCommand,
		class,
		method,
		payload,
		strconv.Itoa(delay),
		strconv.Itoa(priority),
	}
}

// Dispatcher orchestrates validate -> encode -> build -> spawn with retry
// fallback.
type Dispatcher struct {
	builder     *CommandBuilder
	spawner     spawn.Spawner
	log         *statuslog.Logger
	maxAttempts int
}

// NewDispatcher wires a dispatcher from its parts. maxAttempts <= 0 falls
// back to DefaultMaxAttempts.
func NewDispatcher(builder *CommandBuilder, spawner spawn.Spawner, logger *statuslog.Logger, maxAttempts int) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Dispatcher{
		builder:     builder,
		spawner:     spawner,
		log:         logger,
		maxAttempts: maxAttempts,
	}
}

// NewFromConfig builds a dispatcher from the environment configuration,
// applying the configured namespace allow-list.
func NewFromConfig(cfg *config.Config) (*Dispatcher, error) {
	builder, err := NewCommandBuilder(cfg.Dispatch.WorkerBin)
	if err != nil {
		return nil, err
	}
	logger, err := statuslog.New(cfg.Log.StatusPath, cfg.Log.ErrorPath)
	if err != nil {
		return nil, err
	}
	if len(cfg.Queue.AllowedNamespaces) > 0 {
		queue.SetAllowedNamespaces(cfg.Queue.AllowedNamespaces)
	}
	return NewDispatcher(builder, spawn.New(), logger, cfg.Dispatch.MaxAttempts), nil
}

// Dispatch requests asynchronous execution of class.method(params...) with
// the given delay (seconds) and priority. It never returns an error: this is
// a fire-and-forget launch, and every failure ends in the error log, not in
// the caller. A rejected validation is treated like any other dispatch
// failure and consumes retry attempts.
func (d *Dispatcher) Dispatch(class, method string, params []any, delay, priority int) {
	if delay < 0 {
		delay = 0
	}

	ctrl := newRetryController(d.maxAttempts, d.log)
	_ = ctrl.Run(class+"@"+method, func() error {
		return d.attempt(class, method, params, delay, priority)
	})
}

func (d *Dispatcher) attempt(class, method string, params []any, delay, priority int) error {
	if verdict := queue.Validate(class, method); !verdict.OK {
		d.log.Error("%s", verdict.Reason)
		return &ValidationError{Class: class, Method: method, Reason: verdict.Reason}
	}

	payload, err := queue.EncodeParameters(params)
	if err != nil {
		d.log.Error("encode parameters for %s@%s: %v", class, method, err)
		return err
	}

	argv := d.builder.Build(class, method, payload, delay, priority)
	if err := d.spawner.Spawn(argv); err != nil {
		spawnErr := &SpawnError{Cause: err}
		d.log.Error("%s", spawnErr.Error())
		return spawnErr
	}

	d.log.Status("started background job %s@%s (delay=%ds priority=%d)", class, method, delay, priority)
	return nil
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
	defaultErr        error
)

// Submit dispatches through a process-wide dispatcher built lazily from the
// environment configuration. Like Dispatch it never reports failure to the
// caller.
func Submit(class, method string, params []any, delay, priority int) {
	defaultOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			defaultErr = err
			return
		}
		defaultDispatcher, defaultErr = NewFromConfig(cfg)
	})
	if defaultErr != nil {
		log.Error().Err(defaultErr).Msg("background dispatcher unavailable")
		return
	}
	defaultDispatcher.Dispatch(class, method, params, delay, priority)
}
