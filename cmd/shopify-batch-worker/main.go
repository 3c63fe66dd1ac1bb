package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"backend/internal/db"
	syncsvc "backend/internal/sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// snsEnvelope is what SQS delivers when the queue subscribes to the jobs
// topic without raw message delivery.
type snsEnvelope struct {
	Message           string `json:"Message"`
	MessageAttributes map[string]struct {
		Type  string `json:"Type"`
		Value string `json:"Value"`
	} `json:"MessageAttributes"`
}

func handler(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	ddb, err := db.NewDynamoClient(ctx)
	if err != nil {
		// Fail whole batch (infra issue)
		return events.SQSEventResponse{}, err
	}
	persist := db.NewStore(ddb)

	failures := make([]events.SQSBatchItemFailure, 0)

	for _, rec := range sqsEvent.Records {
		if err := processOneBatch(ctx, persist, rec.Body); err != nil {
			// Log + mark this message as failed so it retries (or goes to DLQ)
			fmt.Printf("batch-worker: msgId=%s failed: %v\n", rec.MessageId, err)
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
		}
	}

	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func processOneBatch(ctx context.Context, persist *db.Store, body string) error {
	payload, err := unwrapPayload(body)
	if err != nil {
		return err
	}
	if payload.StoreID == "" || payload.OrganizationID == "" {
		return fmt.Errorf("payload missing store or organization id")
	}

	if len(payload.Orders) > 0 {
		if err := persist.StoreOrders(ctx, payload.OrganizationID, payload.StoreID, payload.Orders); err != nil {
			return fmt.Errorf("store orders: %w", err)
		}
	}
	if len(payload.Transactions) > 0 {
		if err := persist.StoreTransactions(ctx, payload.OrganizationID, payload.StoreID, payload.Transactions); err != nil {
			return fmt.Errorf("store transactions: %w", err)
		}
	}
	if len(payload.Refunds) > 0 {
		if err := persist.StoreRefunds(ctx, payload.OrganizationID, payload.StoreID, payload.Refunds); err != nil {
			return fmt.Errorf("store refunds: %w", err)
		}
	}
	if len(payload.Fulfillments) > 0 {
		if err := persist.StoreFulfillments(ctx, payload.OrganizationID, payload.StoreID, payload.Fulfillments); err != nil {
			return fmt.Errorf("store fulfillments: %w", err)
		}
	}

	fmt.Printf("batch-worker: persisted %d orders (%d txns, %d refunds, %d fulfillments) for store %s\n",
		len(payload.Orders), len(payload.Transactions), len(payload.Refunds), len(payload.Fulfillments), payload.StoreID)
	return nil
}

// unwrapPayload tolerates both SNS-enveloped and raw-delivery bodies.
func unwrapPayload(body string) (*syncsvc.OrderBatchPayload, error) {
	raw := body

	var env snsEnvelope
	if err := json.Unmarshal([]byte(body), &env); err == nil && strings.TrimSpace(env.Message) != "" {
		raw = env.Message
	}

	var payload syncsvc.OrderBatchPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal batch payload: %w", err)
	}
	return &payload, nil
}

func main() { lambda.Start(handler) }
