package etl

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"backend/internal/db"
)

// CostCoverageRow matches the Glue table columns for the coverage report.
type CostCoverageRow struct {
	StoreID         string  `parquet:"name=store_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	MetricDate      string  `parquet:"name=metric_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"` // YYYY-MM-DD
	VariantsTotal   int64   `parquet:"name=variants_total, type=INT64"`
	VariantsCosted  int64   `parquet:"name=variants_costed, type=INT64"`
	CoveragePercent float64 `parquet:"name=coverage_percent, type=DOUBLE"`
}

type CostCoverageETL struct {
	ddb *dynamodb.Client
	s3  *s3.Client
}

func NewCostCoverageETL(cfg aws.Config) *CostCoverageETL {
	return &CostCoverageETL{
		ddb: dynamodb.NewFromConfig(cfg),
		s3:  s3.NewFromConfig(cfg),
	}
}

// Handle is triggered by EventBridge schedule.
//
// Behavior:
//   - Discover active stores from the stores table
//   - For each store, count variants with and without a known unit cost
//   - Write one Parquet row per (store, dt) under:
//     cost_coverage/dt=YYYY-MM-DD/store_id=<store>/part-<rand>.parquet
//
// Env:
// - STORES_TABLE (required)
// - PRODUCTS_TABLE (required)
// - ANALYTICS_BUCKET (required)
// - COST_COVERAGE_PREFIX (default "cost_coverage/")
func (h *CostCoverageETL) Handle(ctx context.Context, _ events.CloudWatchEvent) (map[string]any, error) {
	storesTable := db.StoresTableName()
	bucket := strings.TrimSpace(os.Getenv("ANALYTICS_BUCKET"))
	prefix := strings.TrimSpace(os.Getenv("COST_COVERAGE_PREFIX"))
	if prefix == "" {
		prefix = "cost_coverage/"
	}

	if storesTable == "" {
		return nil, fmt.Errorf("missing env STORES_TABLE")
	}
	if bucket == "" {
		return nil, fmt.Errorf("missing env ANALYTICS_BUCKET")
	}

	stores, err := h.listActiveStores(ctx, storesTable)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return map[string]any{"ok": true, "written": 0, "reason": "no active stores"}, nil
	}

	persist := db.NewStore(h.ddb)
	dtStr := time.Now().UTC().Format("2006-01-02")
	written := 0

	for _, storeID := range stores {
		withCost, total, err := persist.CostCoverage(ctx, storeID)
		if err != nil {
			return nil, fmt.Errorf("cost coverage for store=%s: %w", storeID, err)
		}

		pct := 0.0
		if total > 0 {
			pct = float64(withCost) / float64(total) * 100
		}

		row := CostCoverageRow{
			StoreID:         storeID,
			MetricDate:      dtStr,
			VariantsTotal:   int64(total),
			VariantsCosted:  int64(withCost),
			CoveragePercent: pct,
		}

		key := fmt.Sprintf("%sdt=%s/store_id=%s/part-%s.parquet",
			ensureTrailingSlash(prefix),
			dtStr,
			storeID,
			randHex(8),
		)

		if err := h.writeOneParquetRowToS3(ctx, bucket, key, row); err != nil {
			return nil, fmt.Errorf("write parquet for store=%s dt=%s: %w", storeID, dtStr, err)
		}
		written++
	}

	return map[string]any{
		"ok":      true,
		"stores":  len(stores),
		"written": written,
		"bucket":  bucket,
		"prefix":  prefix,
	}, nil
}

// listActiveStores scans the stores table for META items with Active=true.
func (h *CostCoverageETL) listActiveStores(ctx context.Context, table string) ([]string, error) {
	stores := make([]string, 0, 64)

	var startKey map[string]ddbtypes.AttributeValue
	for {
		out, err := h.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
			FilterExpression:  aws.String("SK = :meta AND Active = :active"),
			ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
				":meta":   &ddbtypes.AttributeValueMemberS{Value: "META"},
				":active": &ddbtypes.AttributeValueMemberBOOL{Value: true},
			},
			ProjectionExpression: aws.String("PK"),
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb scan %s: %w", table, err)
		}

		for _, it := range out.Items {
			if v, ok := it["PK"]; ok {
				if sv, ok2 := v.(*ddbtypes.AttributeValueMemberS); ok2 {
					id := strings.TrimPrefix(strings.TrimSpace(sv.Value), "STORE#")
					if id != "" {
						stores = append(stores, id)
					}
				}
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return stores, nil
}

func (h *CostCoverageETL) writeOneParquetRowToS3(ctx context.Context, bucket, key string, row CostCoverageRow) error {
	tmpDir := os.TempDir()
	localPath := filepath.Join(tmpDir, "cost_coverage_"+randHex(8)+".parquet")

	fw, err := local.NewLocalFileWriter(localPath)
	if err != nil {
		return fmt.Errorf("parquet file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(CostCoverageRow), 1)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.PageSize = 8 * 1024
	pw.CompressionType = 0 // no snappy

	if err := pw.Write(row); err != nil {
		_ = pw.WriteStop()
		_ = fw.Close()
		return fmt.Errorf("parquet write row: %w", err)
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet write stop: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("parquet close: %w", err)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read parquet tmp: %w", err)
	}
	defer func() { _ = os.Remove(localPath) }()

	_, err = h.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
		ACL:         s3types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("s3 putobject failed: %w", err)
	}
	return nil
}

func ensureTrailingSlash(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
