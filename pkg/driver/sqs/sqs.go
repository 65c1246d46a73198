package sqs

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/lukengu-deimos/background-job/pkg/queue"
)

// maxDelaySeconds is the SQS ceiling for DelaySeconds (15 minutes).
const maxDelaySeconds = 900

// Driver implements queue.Driver on Amazon SQS. The delay maps onto
// DelaySeconds; priority travels as a message attribute since SQS has no
// native ordering by priority.
type Driver struct {
	client   *sqs.Client
	queueUrl string
}

// New creates an SQS driver for a queue URL.
func New(client *sqs.Client, queueUrl string) *Driver {
	return &Driver{
		client:   client,
		queueUrl: queueUrl,
	}
}

// Enqueue submits a job. The queueName argument is ignored; the driver is
// bound to one queue URL.
func (d *Driver) Enqueue(ctx context.Context, queueName string, job queue.Queueable) error {
	body, err := job.Body()
	if err != nil {
		return err
	}

	delay := int32(job.Delay())
	if delay > maxDelaySeconds {
		delay = maxDelaySeconds
	}

	input := &sqs.SendMessageInput{
		QueueUrl:     aws.String(d.queueUrl),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: delay,
		MessageAttributes: map[string]types.MessageAttributeValue{
			"priority": {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.Itoa(job.Priority())),
			},
		},
	}

	_, err = d.client.SendMessage(ctx, input)
	return err
}
