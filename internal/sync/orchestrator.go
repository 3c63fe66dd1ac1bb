package sync

import (
	"context"
	"time"

	"backend/internal/shopify"
	"backend/internal/store"
	"backend/internal/syncconfig"
)

// StoreResolver yields the organization's active store credentials.
type StoreResolver interface {
	GetActiveStore(ctx context.Context, orgID string) (*store.Credentials, error)
}

// FetchClient is the paginated Admin API surface the orchestrator drives.
type FetchClient interface {
	GetProducts(ctx context.Context, first int, cursor string) (*shopify.ProductsPage, error)
	GetOrders(ctx context.Context, first int, cursor string, query string) (*shopify.OrdersPage, error)
	GetCustomers(ctx context.Context, first int, cursor string) (*shopify.CustomersPage, error)
	GetInventoryLevels(ctx context.Context, itemIDs []string) (map[string][]shopify.InventoryLevelRecord, error)
	GetShopInfo(ctx context.Context) (*shopify.ShopInfo, error)
	GetAnalyticsSessions(ctx context.Context, startDate, endDate string) ([]shopify.AnalyticsRow, error)
}

// ClientFactory binds a fetch client to resolved credentials.
type ClientFactory func(creds store.Credentials) FetchClient

// Persister is the upsert surface; implementations must be idempotent by
// vendor id + store id since batches are delivered at-least-once.
type Persister interface {
	StoreOrders(ctx context.Context, orgID, storeID string, orders []shopify.OrderRecord) error
	StoreTransactions(ctx context.Context, orgID, storeID string, txns []shopify.TransactionRecord) error
	StoreRefunds(ctx context.Context, orgID, storeID string, refunds []shopify.RefundRecord) error
	StoreFulfillments(ctx context.Context, orgID, storeID string, fulfillments []shopify.FulfillmentRecord) error
	StoreProducts(ctx context.Context, orgID, storeID string, products []shopify.ProductRecord) error
	StoreCustomers(ctx context.Context, orgID, storeID string, customers []shopify.CustomerRecord) error
	StoreSessions(ctx context.Context, orgID, storeID string, sessions []shopify.SessionRecord) error
	CreateProductCostComponents(ctx context.Context, orgID, storeID string, comps []shopify.CostComponentRecord) error
	UpdateStoreLastSync(ctx context.Context, storeID string, ts time.Time) error
	CostCoverage(ctx context.Context, storeID string) (withCost, total int, err error)
}

// JobQueue dispatches background persistence work; retry semantics belong
// to the queue, not this core.
type JobQueue interface {
	CreateJob(ctx context.Context, jobType string, priority int, payload any) (string, error)
}

// Orchestrator drives the three entity streams against one store. All
// collaborators are injected, so the whole control flow runs in-process
// under test with fakes.
type Orchestrator struct {
	stores  StoreResolver
	clients ClientFactory
	persist Persister
	queue   JobQueue
	cfg     syncconfig.Config
}

func New(stores StoreResolver, clients ClientFactory, persist Persister, queue JobQueue, cfg syncconfig.Config) *Orchestrator {
	return &Orchestrator{
		stores:  stores,
		clients: clients,
		persist: persist,
		queue:   queue,
		cfg:     cfg,
	}
}

type BatchStats struct {
	BatchesScheduled int      `json:"batchesScheduled"`
	OrdersQueued     int      `json:"ordersQueued"`
	JobIDs           []string `json:"jobIds,omitempty"`
}

type InitialResult struct {
	Success            bool       `json:"success"`
	RecordsProcessed   int        `json:"recordsProcessed"`
	DataChanged        bool       `json:"dataChanged"`
	ProductsProcessed  int        `json:"productsProcessed"`
	OrdersQueued       int        `json:"ordersQueued"`
	CustomersProcessed int        `json:"customersProcessed"`
	BatchStats         BatchStats `json:"batchStats"`
	Errors             []string   `json:"errors,omitempty"`
}

type IncrementalResult struct {
	Success          bool     `json:"success"`
	RecordsProcessed int      `json:"recordsProcessed"`
	DataChanged      bool     `json:"dataChanged"`
	Errors           []string `json:"errors,omitempty"`
}

type SessionResult struct {
	Success           bool     `json:"success"`
	SessionsProcessed int      `json:"sessionsProcessed"`
	OrdersProcessed   int      `json:"ordersProcessed"`
	DataSource        string   `json:"dataSource"` // "analytics" | "inferred"
	Errors            []string `json:"errors,omitempty"`
}

type InitialOptions struct {
	SyncSessionID string
	DaysBack      int // 0 means the configured default
}
