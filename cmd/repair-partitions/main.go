package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"

	"backend/internal/etl"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	r := etl.NewPartitionRepairer(cfg)

	lambda.Start(func(ctx context.Context, ev events.CloudWatchEvent) (etl.RepairResult, error) {
		return r.Handle(ctx, ev,
			strings.TrimSpace(os.Getenv("ATHENA_DATABASE")),
			strings.TrimSpace(os.Getenv("ATHENA_TABLE")),
			strings.TrimSpace(os.Getenv("ATHENA_WORKGROUP")),
			strings.TrimSpace(os.Getenv("ATHENA_OUTPUT")),
		)
	})
}
