package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const (
	// JobTypeOrderBatch carries a snapshot of accumulated order records
	// (plus their sibling transaction/refund/fulfillment sets) for the
	// batch worker to persist.
	JobTypeOrderBatch = "shopify.orders.persist-batch"

	PriorityNormal = 5
	PriorityHigh   = 1
)

func JobsTopicArn() string {
	return strings.TrimSpace(os.Getenv("SYNC_JOBS_TOPIC_ARN"))
}

// Queue publishes background jobs to SNS. A queue subscription feeds the
// worker Lambdas, which own retry and DLQ semantics; delivery here is
// fire-and-forget, at-least-once.
type Queue struct {
	sns      *sns.Client
	topicArn string
}

func NewQueue(client *sns.Client, topicArn string) *Queue {
	return &Queue{sns: client, topicArn: topicArn}
}

// CreateJob publishes one job and returns the message id. The payload is
// JSON-marshaled at enqueue time, so callers may freely mutate their copy
// afterwards.
func (q *Queue) CreateJob(ctx context.Context, jobType string, priority int, payload any) (string, error) {
	if strings.TrimSpace(q.topicArn) == "" {
		return "", fmt.Errorf("SYNC_JOBS_TOPIC_ARN not set")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	out, err := q.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(q.topicArn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"jobType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(jobType),
			},
			"priority": {
				DataType:    aws.String("Number"),
				StringValue: aws.String(strconv.Itoa(priority)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("publish job %s: %w", jobType, err)
	}

	return aws.ToString(out.MessageId), nil
}
