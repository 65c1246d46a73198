package worker

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lukengu-deimos/background-job/pkg/queue"
	"github.com/lukengu-deimos/background-job/pkg/statuslog"
)

// memDriver collects enqueued jobs in memory.
type memDriver struct {
	jobs     []queue.Queueable
	queues   []string
	failWith error
}

func (m *memDriver) Enqueue(ctx context.Context, queueName string, job queue.Queueable) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.jobs = append(m.jobs, job)
	m.queues = append(m.queues, queueName)
	return nil
}

func newTestEntryPoint(driver *memDriver) (*EntryPoint, *bytes.Buffer, *bytes.Buffer) {
	var status, errs bytes.Buffer
	return NewEntryPoint(driver, "default", statuslog.NewWithWriters(&status, &errs)), &status, &errs
}

func mustEncode(t *testing.T, params []any) string {
	t.Helper()
	payload, err := queue.EncodeParameters(params)
	assert.NoError(t, err)
	return payload
}

func TestRun_EnqueuesMaterializedJob(t *testing.T) {
	queue.Register(`App\Jobs\Notify`, "handle", func(args ...any) (queue.Queueable, error) {
		return queue.NewEnvelope(`App\Jobs\Notify`, "handle", args), nil
	})

	driver := &memDriver{}
	ep, status, errs := newTestEntryPoint(driver)

	err := ep.Run(context.Background(), `App\Jobs\Notify`, "handle", mustEncode(t, []any{"a", 1}), 30, 2)

	assert.NoError(t, err)
	assert.Len(t, driver.jobs, 1)
	assert.Equal(t, "default", driver.queues[0])
	assert.Equal(t, 2, driver.jobs[0].Priority())
	assert.Equal(t, 30, driver.jobs[0].Delay())
	assert.Contains(t, status.String(), "queued job")
	assert.Empty(t, errs.String())

	env, ok := driver.jobs[0].(*queue.Envelope)
	assert.True(t, ok)
	assert.Equal(t, []any{"a", 1}, env.Args)
}

func TestRun_LogsThroughContextLogger(t *testing.T) {
	queue.Register(`App\Jobs\Notify`, "handle", func(args ...any) (queue.Queueable, error) {
		return queue.NewEnvelope(`App\Jobs\Notify`, "handle", args), nil
	})

	var out bytes.Buffer
	logger := zerolog.New(&out)
	ctx := logger.WithContext(context.Background())

	driver := &memDriver{}
	ep, _, _ := newTestEntryPoint(driver)

	err := ep.Run(ctx, `App\Jobs\Notify`, "handle", mustEncode(t, nil), 0, 0)

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Materializing dispatched job")
	assert.Contains(t, out.String(), `App\\Jobs\\Notify@handle`)
}

func TestRun_CorruptedPayloadIsFatal(t *testing.T) {
	driver := &memDriver{}
	ep, _, errs := newTestEntryPoint(driver)

	err := ep.Run(context.Background(), `App\Jobs\Notify`, "handle", "%%%corrupted%%%", 0, 0)

	assert.Error(t, err)
	var codecErr *queue.CodecError
	assert.True(t, errors.As(err, &codecErr))
	assert.Empty(t, driver.jobs, "nothing may be enqueued on decode failure")
	assert.Contains(t, errs.String(), "decode payload")
}

func TestRun_UnregisteredFactory(t *testing.T) {
	driver := &memDriver{}
	ep, _, errs := newTestEntryPoint(driver)

	err := ep.Run(context.Background(), `App\Jobs\Ghost`, "handle", mustEncode(t, nil), 0, 0)

	assert.Error(t, err)
	assert.Empty(t, driver.jobs)
	assert.Contains(t, errs.String(), "no factory registered")
}

func TestRun_FactoryError(t *testing.T) {
	queue.Register(`App\Jobs\Broken`, "handle", func(args ...any) (queue.Queueable, error) {
		return nil, errors.New("cannot build")
	})

	driver := &memDriver{}
	ep, _, errs := newTestEntryPoint(driver)

	err := ep.Run(context.Background(), `App\Jobs\Broken`, "handle", mustEncode(t, nil), 0, 0)

	var ferr *FactoryError
	assert.True(t, errors.As(err, &ferr))
	assert.Empty(t, driver.jobs)
	assert.Contains(t, errs.String(), "cannot build")
}

func TestRun_FactoryPanicIsContained(t *testing.T) {
	queue.Register(`App\Jobs\Panics`, "handle", func(args ...any) (queue.Queueable, error) {
		panic("boom")
	})

	driver := &memDriver{}
	ep, _, errs := newTestEntryPoint(driver)

	var err error
	assert.NotPanics(t, func() {
		err = ep.Run(context.Background(), `App\Jobs\Panics`, "handle", mustEncode(t, nil), 0, 0)
	})

	var ferr *FactoryError
	assert.True(t, errors.As(err, &ferr))
	assert.Contains(t, errs.String(), "factory panicked")
}

func TestRun_EnqueueFailure(t *testing.T) {
	queue.Register(`App\Jobs\Notify`, "handle", func(args ...any) (queue.Queueable, error) {
		return queue.NewEnvelope(`App\Jobs\Notify`, "handle", args), nil
	})

	driver := &memDriver{failWith: errors.New("queue unavailable")}
	ep, status, errs := newTestEntryPoint(driver)

	err := ep.Run(context.Background(), `App\Jobs\Notify`, "handle", mustEncode(t, nil), 0, 0)

	var ferr *FactoryError
	assert.True(t, errors.As(err, &ferr))
	assert.Contains(t, errs.String(), "queue unavailable")
	assert.NotContains(t, status.String(), "queued job")
}
