package console

import (
	"context"
	"fmt"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/database"
	dbdriver "github.com/lukengu-deimos/background-job/pkg/driver/database"
	redisdriver "github.com/lukengu-deimos/background-job/pkg/driver/redis"
	sqsdriver "github.com/lukengu-deimos/background-job/pkg/driver/sqs"
	"github.com/lukengu-deimos/background-job/pkg/queue"
)

// newQueueDriver builds the downstream queue driver selected by
// QUEUE_CONNECTION.
func newQueueDriver(ctx context.Context, cfg *config.Config) (queue.Driver, error) {
	switch cfg.Queue.Connection {
	case "redis":
		return redisdriver.New(cfg.Redis), nil
	case "sqs":
		client, err := config.LoadSQSClient(ctx, cfg.SQS)
		if err != nil {
			return nil, err
		}
		return sqsdriver.New(client, cfg.SQS.QueueUrl), nil
	case "database":
		db, err := database.NewFactory().Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		return dbdriver.New(cfg.Database, db), nil
	default:
		return nil, fmt.Errorf("unsupported queue connection: %s", cfg.Queue.Connection)
	}
}
