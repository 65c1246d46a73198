package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/queue"
)

// Driver implements queue.Driver on Redis lists. Immediate jobs land on
// queues:<name>; delayed jobs go to the queues:<name>:delayed sorted set
// scored by ready-time, for a consumer to migrate once due. Priority rides
// in the job body.
type Driver struct {
	client *goredis.Client
}

// New creates a Redis driver from configuration.
func New(cfg config.RedisConfig) *Driver {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Driver{client: rdb}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client) *Driver {
	return &Driver{client: client}
}

// Client exposes the underlying connection, e.g. for the scheduler lock.
func (d *Driver) Client() *goredis.Client {
	return d.client
}

// Enqueue submits a job to the named queue.
func (d *Driver) Enqueue(ctx context.Context, queueName string, job queue.Queueable) error {
	body, err := job.Body()
	if err != nil {
		return err
	}

	if delay := job.Delay(); delay > 0 {
		readyAt := time.Now().Add(time.Duration(delay) * time.Second).Unix()
		return d.client.ZAdd(ctx, "queues:"+queueName+":delayed", goredis.Z{
			Score:  float64(readyAt),
			Member: body,
		}).Err()
	}
	return d.client.RPush(ctx, "queues:"+queueName, body).Err()
}
