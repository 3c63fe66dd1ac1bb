package syncconfig

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Dispatch policy for persisting the order stream.
const (
	DispatchJobs   = "jobs"   // bounded batches via the background job queue
	DispatchDirect = "direct" // synchronous chunked mutations
)

// Config holds the sync tunables. Defaults are overridden first by env
// vars, then by SSM parameters when SYNC_CONFIG_SSM_PREFIX is set, so a
// deploy can retune batch sizes without a code change.
type Config struct {
	PageSize           int
	OrderBatchSize     int
	InventoryBatchSize int
	DaysBack           int
	FallbackDays       int
	OrderDispatch      string
}

func Default() Config {
	return Config{
		PageSize:           50,
		OrderBatchSize:     25,
		InventoryBatchSize: 50,
		DaysBack:           60,
		FallbackDays:       30,
		OrderDispatch:      DispatchJobs,
	}
}

// Load never fails: a broken SSM lookup logs and falls back to env/defaults
// so a parameter-store outage cannot block syncs.
func Load(ctx context.Context) Config {
	cfg := Default()

	applyValue := func(key, val string) {
		val = strings.TrimSpace(val)
		if val == "" {
			return
		}
		switch key {
		case "page-size":
			setPositive(&cfg.PageSize, val)
		case "order-batch-size":
			setPositive(&cfg.OrderBatchSize, val)
		case "inventory-batch-size":
			setPositive(&cfg.InventoryBatchSize, val)
		case "days-back":
			setPositive(&cfg.DaysBack, val)
		case "fallback-days":
			setPositive(&cfg.FallbackDays, val)
		case "order-dispatch":
			if val == DispatchJobs || val == DispatchDirect {
				cfg.OrderDispatch = val
			}
		}
	}

	envKeys := map[string]string{
		"page-size":            "SYNC_PAGE_SIZE",
		"order-batch-size":     "SYNC_ORDER_BATCH_SIZE",
		"inventory-batch-size": "SYNC_INVENTORY_BATCH_SIZE",
		"days-back":            "SYNC_DAYS_BACK",
		"fallback-days":        "SYNC_FALLBACK_DAYS",
		"order-dispatch":       "SYNC_ORDER_DISPATCH",
	}
	for key, env := range envKeys {
		applyValue(key, os.Getenv(env))
	}

	prefix := strings.TrimSpace(os.Getenv("SYNC_CONFIG_SSM_PREFIX"))
	if prefix == "" {
		return cfg
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		fmt.Printf("syncconfig: load aws config: %v\n", err)
		return cfg
	}

	params, err := fetchParameters(ctx, ssm.NewFromConfig(awsCfg), prefix)
	if err != nil {
		fmt.Printf("syncconfig: ssm lookup under %s failed: %v\n", prefix, err)
		return cfg
	}

	for key, val := range params {
		applyValue(key, val)
	}
	return cfg
}

func fetchParameters(ctx context.Context, client *ssm.Client, prefix string) (map[string]string, error) {
	prefix = strings.TrimRight(prefix, "/") + "/"

	out := map[string]string{}
	var nextToken *string
	for {
		res, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:      aws.String(prefix),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, err
		}

		for _, p := range res.Parameters {
			name := strings.TrimPrefix(aws.ToString(p.Name), prefix)
			out[name] = aws.ToString(p.Value)
		}

		if res.NextToken == nil {
			return out, nil
		}
		nextToken = res.NextToken
	}
}

func setPositive(dst *int, val string) {
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		*dst = n
	}
}
