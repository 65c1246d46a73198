package dispatch

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukengu-deimos/background-job/pkg/statuslog"
)

func TestRetryController_FirstAttemptSucceeds(t *testing.T) {
	var status bytes.Buffer
	ctrl := newRetryController(3, statuslog.NewWithWriters(&status, &bytes.Buffer{}))

	calls := 0
	err := ctrl.Run("job", func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, strings.Count(status.String(), "retrying"))
	assert.Equal(t, 0, strings.Count(status.String(), "giving up"))
}

func TestRetryController_SucceedsOnThirdAttempt(t *testing.T) {
	var status bytes.Buffer
	ctrl := newRetryController(3, statuslog.NewWithWriters(&status, &bytes.Buffer{}))

	calls := 0
	err := ctrl.Run("job", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, strings.Count(status.String(), "retrying"))
	assert.Equal(t, 0, strings.Count(status.String(), "giving up"))
}

func TestRetryController_Exhausts(t *testing.T) {
	var status bytes.Buffer
	ctrl := newRetryController(3, statuslog.NewWithWriters(&status, &bytes.Buffer{}))

	calls := 0
	failure := errors.New("permanent")
	err := ctrl.Run("job", func() error {
		calls++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, strings.Count(status.String(), "retrying"))
	assert.Contains(t, status.String(), "failed after 3 attempts")
}

func TestRetryController_FreshStatePerRun(t *testing.T) {
	log := statuslog.Nop()

	// Two controllers for two unrelated requests must not share counts.
	first := newRetryController(2, log)
	_ = first.Run("a", func() error { return errors.New("boom") })

	calls := 0
	second := newRetryController(2, log)
	err := second.Run("b", func() error {
		calls++
		return errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryController_DefaultsMaxAttempts(t *testing.T) {
	ctrl := newRetryController(0, statuslog.Nop())
	assert.Equal(t, DefaultMaxAttempts, ctrl.max)
}
