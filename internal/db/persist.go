package db

import (
	"context"
	"fmt"
	"time"

	"backend/internal/shopify"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB caps BatchWriteItem at 25 requests per call.
const writeChunkSize = 25

const maxUnprocessedRetries = 3

// Store implements the persistence mutations consumed by the sync
// orchestrator and the batch worker. Every write is an upsert keyed by
// STORE#<storeID> / <TYPE>#<vendorID>, so re-enqueued batches are
// idempotent.
type Store struct {
	ddb *dynamodb.Client
}

func NewStore(ddb *dynamodb.Client) *Store {
	return &Store{ddb: ddb}
}

func (s *Store) StoreOrders(ctx context.Context, orgID, storeID string, orders []shopify.OrderRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(orders))
	for _, o := range orders {
		av, err := keyedItem(o, storeID, "ORDER#"+o.OrderID)
		if err != nil {
			return fmt.Errorf("marshal order %s: %w", o.OrderID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, OrdersTableName(), items)
}

func (s *Store) StoreTransactions(ctx context.Context, orgID, storeID string, txns []shopify.TransactionRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(txns))
	for _, t := range txns {
		av, err := keyedItem(t, storeID, fmt.Sprintf("ORDER#%s#TXN#%s", t.OrderID, t.TransactionID))
		if err != nil {
			return fmt.Errorf("marshal transaction %s: %w", t.TransactionID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, TransactionsTableName(), items)
}

func (s *Store) StoreRefunds(ctx context.Context, orgID, storeID string, refunds []shopify.RefundRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(refunds))
	for _, r := range refunds {
		av, err := keyedItem(r, storeID, fmt.Sprintf("ORDER#%s#REFUND#%s", r.OrderID, r.RefundID))
		if err != nil {
			return fmt.Errorf("marshal refund %s: %w", r.RefundID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, RefundsTableName(), items)
}

func (s *Store) StoreFulfillments(ctx context.Context, orgID, storeID string, fulfillments []shopify.FulfillmentRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(fulfillments))
	for _, f := range fulfillments {
		av, err := keyedItem(f, storeID, fmt.Sprintf("ORDER#%s#FUL#%s", f.OrderID, f.FulfillmentID))
		if err != nil {
			return fmt.Errorf("marshal fulfillment %s: %w", f.FulfillmentID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, FulfillmentsTableName(), items)
}

func (s *Store) StoreProducts(ctx context.Context, orgID, storeID string, products []shopify.ProductRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(products))
	for _, p := range products {
		av, err := keyedItem(p, storeID, "PRODUCT#"+p.ProductID)
		if err != nil {
			return fmt.Errorf("marshal product %s: %w", p.ProductID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, ProductsTableName(), items)
}

func (s *Store) StoreCustomers(ctx context.Context, orgID, storeID string, customers []shopify.CustomerRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(customers))
	for _, c := range customers {
		av, err := keyedItem(c, storeID, "CUSTOMER#"+c.CustomerID)
		if err != nil {
			return fmt.Errorf("marshal customer %s: %w", c.CustomerID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, CustomersTableName(), items)
}

func (s *Store) StoreSessions(ctx context.Context, orgID, storeID string, sessions []shopify.SessionRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(sessions))
	for _, sess := range sessions {
		av, err := keyedItem(sess, storeID, "SESSION#"+sess.SessionID)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", sess.SessionID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, SessionsTableName(), items)
}

func (s *Store) CreateProductCostComponents(ctx context.Context, orgID, storeID string, comps []shopify.CostComponentRecord) error {
	items := make([]map[string]types.AttributeValue, 0, len(comps))
	for _, c := range comps {
		av, err := keyedItem(c, storeID, "COST#VARIANT#"+c.VariantID)
		if err != nil {
			return fmt.Errorf("marshal cost component %s: %w", c.VariantID, err)
		}
		items = append(items, av)
	}
	return s.batchWrite(ctx, CostComponentsTableName(), items)
}

// UpdateStoreLastSync stamps the store credential item after a sync run.
func (s *Store) UpdateStoreLastSync(ctx context.Context, storeID string, ts time.Time) error {
	tbl := StoresTableName()
	if tbl == "" {
		return fmt.Errorf("STORES_TABLE not set")
	}

	_, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(tbl),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "STORE#" + storeID},
			"SK": &types.AttributeValueMemberS{Value: "META"},
		},
		UpdateExpression: aws.String("SET LastSyncAt=:a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a": &types.AttributeValueMemberS{Value: ts.UTC().Format(time.RFC3339)},
		},
	})
	return err
}

// CostCoverage counts variants with a known positive unit cost for one
// store. Used by the post-sync completeness check and the coverage ETL.
func (s *Store) CostCoverage(ctx context.Context, storeID string) (withCost, total int, err error) {
	tbl := ProductsTableName()
	if tbl == "" {
		return 0, 0, fmt.Errorf("PRODUCTS_TABLE not set")
	}

	var startKey map[string]types.AttributeValue
	for {
		out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(tbl),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :p)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: "STORE#" + storeID},
				":p":  &types.AttributeValueMemberS{Value: "PRODUCT#"},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("query products: %w", err)
		}

		for _, item := range out.Items {
			var p shopify.ProductRecord
			if err := attributevalue.UnmarshalMap(item, &p); err != nil {
				continue
			}
			for _, v := range p.Variants {
				total++
				if v.UnitCost > 0 {
					withCost++
				}
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return withCost, total, nil
}

func keyedItem(record any, storeID, sk string) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, err
	}
	av["PK"] = &types.AttributeValueMemberS{Value: "STORE#" + storeID}
	av["SK"] = &types.AttributeValueMemberS{Value: sk}
	return av, nil
}

// batchWrite upserts in chunks of 25, retrying unprocessed items a few
// times before giving up.
func (s *Store) batchWrite(ctx context.Context, table string, items []map[string]types.AttributeValue) error {
	if len(items) == 0 {
		return nil
	}
	if table == "" {
		return fmt.Errorf("table name not configured")
	}

	for start := 0; start < len(items); start += writeChunkSize {
		end := start + writeChunkSize
		if end > len(items) {
			end = len(items)
		}

		reqs := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		pending := map[string][]types.WriteRequest{table: reqs}
		for attempt := 0; len(pending[table]) > 0; attempt++ {
			out, err := s.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return fmt.Errorf("batch write %s: %w", table, err)
			}

			pending = out.UnprocessedItems
			if len(pending[table]) == 0 {
				break
			}
			if attempt >= maxUnprocessedRetries {
				return fmt.Errorf("batch write %s: %d items unprocessed after %d retries", table, len(pending[table]), attempt)
			}
			time.Sleep(time.Duration(attempt+1) * 100 * time.Millisecond)
		}
	}

	return nil
}
