package schedule

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Kernel manages scheduled dispatch entries
type Kernel struct {
	cron         *cron.Cron
	lockProvider LockProvider
}

// JobOption configures a scheduled entry
type JobOption func(*jobConfig)

type jobConfig struct {
	withoutOverlapping bool
	onOneServer        bool
	name               string
}

// NewKernel creates a new scheduler kernel with second-level precision
func NewKernel(lockProvider LockProvider) *Kernel {
	return &Kernel{
		cron:         cron.New(cron.WithSeconds()),
		lockProvider: lockProvider,
	}
}

// SetLockProvider sets the distributed lock provider
func (k *Kernel) SetLockProvider(provider LockProvider) {
	k.lockProvider = provider
}

// WithoutOverlapping prevents the entry from running while the previous
// instance is still running (local only)
func WithoutOverlapping() JobOption {
	return func(c *jobConfig) {
		c.withoutOverlapping = true
	}
}

// OnOneServer ensures the entry runs on only one server per tick
// (distributed lock)
func OnOneServer(name string) JobOption {
	return func(c *jobConfig) {
		c.onOneServer = true
		c.name = name
	}
}

// Register adds a function to be run on a given schedule.
// Schedule format: "s m h dom mon dow"
func (k *Kernel) Register(schedule string, cmd func(), opts ...JobOption) {
	cfg := &jobConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var job cron.Job = cron.FuncJob(cmd)

	if cfg.withoutOverlapping {
		job = cron.SkipIfStillRunning(cron.DefaultLogger)(job)
	}

	if cfg.onOneServer {
		job = k.wrapOnOneServer(cfg.name, job)
	}

	if _, err := k.cron.AddJob(schedule, job); err != nil {
		log.Error().Err(err).Str("spec", schedule).Msg("Failed to register cron entry")
		return
	}
	log.Info().Str("entry", cfg.name).Str("spec", schedule).Msg("Registered cron entry")
}

// wrapOnOneServer guards an entry with the distributed lock. The provider is
// read on every tick, so entries registered before SetLockProvider still get
// locked once a provider is installed.
func (k *Kernel) wrapOnOneServer(name string, inner cron.Job) cron.Job {
	return cron.FuncJob(func() {
		provider := k.lockProvider
		if provider == nil {
			log.Warn().Str("entry", name).Msg("Running OnOneServer entry unlocked: LockProvider not initialized")
			inner.Run()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// The lock covers the tick, not the job run; SETNX-style acquisition
		// keeps other servers off this slot.
		acquired, err := provider.GetLock(ctx, name, 1*time.Minute)
		if err != nil {
			log.Error().Err(err).Str("entry", name).Msg("Error checking scheduler lock")
			return
		}
		if !acquired {
			return
		}
		defer func() {
			_ = provider.ReleaseLock(context.Background(), name)
		}()
		inner.Run()
	})
}

// Run starts the scheduler and blocks until interrupt
func (k *Kernel) Run() {
	log.Info().Msg("Starting task scheduler...")
	k.cron.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Stopping task scheduler...")
	stopCtx := k.cron.Stop()
	<-stopCtx.Done() // Wait for active entries
}
