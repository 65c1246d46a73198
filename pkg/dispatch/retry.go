package dispatch

import (
	"github.com/lukengu-deimos/background-job/pkg/statuslog"
)

// DefaultMaxAttempts is used when configuration does not supply a bound.
const DefaultMaxAttempts = 3

type retryState int

const (
	stateIdle retryState = iota
	stateAttempting
	stateSucceeded
	stateExhausted
)

// retryController bounds and sequences repeated dispatch attempts. All state
// lives on the instance; callers allocate one per top-level dispatch so
// attempt counts never bleed between unrelated or nested requests.
type retryController struct {
	max     int
	log     *statuslog.Logger
	state   retryState
	attempt int
}

func newRetryController(max int, log *statuslog.Logger) *retryController {
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	return &retryController{max: max, log: log, state: stateIdle}
}

// Run invokes fn until it succeeds or the attempt bound is exhausted,
// returning the last error. Attempts are sequential and blocking.
func (c *retryController) Run(name string, fn func() error) error {
	for {
		c.state = stateAttempting
		c.attempt++
		c.log.Status("dispatching %s (attempt %d/%d)", name, c.attempt, c.max)

		err := fn()
		if err == nil {
			c.state = stateSucceeded
			return nil
		}

		if c.attempt >= c.max {
			c.state = stateExhausted
			c.log.Status("giving up on %s: failed after %d attempts", name, c.max)
			return err
		}
		c.log.Status("retrying %s after failed attempt %d", name, c.attempt)
	}
}
