package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backend/internal/jobs"
	"backend/internal/shopify"
	"backend/internal/store"
	"backend/internal/syncconfig"
)

// Initial runs a full historical sync for one organization: products,
// orders, and customers fetched as three concurrent streams. A stream
// failure is contained to that stream; only a missing store aborts the
// whole run.
func (o *Orchestrator) Initial(ctx context.Context, orgID string, opts InitialOptions) (*InitialResult, error) {
	creds, err := o.stores.GetActiveStore(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve active store: %w", err)
	}
	client := o.clients(*creds)

	daysBack := opts.DaysBack
	if daysBack <= 0 {
		daysBack = o.cfg.DaysBack
	}

	var (
		wg       sync.WaitGroup
		prodN    int
		prodErr  error
		orderSt  orderStreamStats
		orderErr error
		custN    int
		custErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		prodN, prodErr = o.runProductStream(ctx, client, *creds)
	}()
	go func() {
		defer wg.Done()
		orderSt, orderErr = o.runOrderStream(ctx, client, *creds, daysBack, opts.SyncSessionID)
	}()
	go func() {
		defer wg.Done()
		custN, custErr = o.runCustomerStream(ctx, client, *creds)
	}()
	wg.Wait()

	res := &InitialResult{}

	if prodErr != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Product sync failed: %v", prodErr))
	} else {
		res.ProductsProcessed = prodN
	}

	if orderErr != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Order sync failed: %v", orderErr))
	} else {
		res.OrdersQueued = orderSt.queued
		res.BatchStats = BatchStats{
			BatchesScheduled: orderSt.batches,
			OrdersQueued:     orderSt.queued,
			JobIDs:           orderSt.jobIDs,
		}
	}

	if custErr != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Customer sync failed: %v", custErr))
	} else {
		res.CustomersProcessed = custN
	}

	res.RecordsProcessed = res.ProductsProcessed + res.OrdersQueued + res.CustomersProcessed
	res.DataChanged = res.RecordsProcessed > 0
	res.Success = len(res.Errors) == 0

	o.postSync(ctx, creds.ID)

	return res, nil
}

type orderStreamStats struct {
	queued  int
	batches int
	jobIDs  []string
}

// runOrderStream paginates the order window, maps every node, and flushes
// bounded batches. Dispatch policy decides whether a flush enqueues a
// background job or persists synchronously.
func (o *Orchestrator) runOrderStream(ctx context.Context, client FetchClient, creds store.Credentials, daysBack int, syncSessionID string) (orderStreamStats, error) {
	var stats orderStreamStats

	start := o.orderWindowStart(ctx, client, creds, daysBack)
	filter := fmt.Sprintf("created_at:>='%s'", start.Format(time.RFC3339))

	batcher := newOrderBatcher(o.cfg.OrderBatchSize)

	flush := func() error {
		if batcher.empty() {
			return nil
		}
		payload := batcher.snapshot(creds.OrganizationID, creds.ID, syncSessionID)

		if o.cfg.OrderDispatch == syncconfig.DispatchDirect {
			if err := o.persistOrderPayload(ctx, payload); err != nil {
				return err
			}
		} else {
			jobID, err := o.queue.CreateJob(ctx, jobs.JobTypeOrderBatch, jobs.PriorityNormal, payload)
			if err != nil {
				return fmt.Errorf("enqueue order batch: %w", err)
			}
			stats.jobIDs = append(stats.jobIDs, jobID)
		}

		stats.batches++
		stats.queued += len(payload.Orders)
		batcher.reset()
		return nil
	}

	cursor := ""
	for {
		page, err := client.GetOrders(ctx, o.cfg.PageSize, cursor, filter)
		if err != nil {
			return orderStreamStats{}, err
		}
		if len(page.Errors) > 0 {
			// Some windows legitimately return errors alongside zero
			// orders; treat the window as drained rather than failing.
			fmt.Printf("sync: orders query reported vendor errors, stopping pagination: %v\n", page.Errors)
			break
		}

		for _, node := range page.Nodes {
			batcher.add(shopify.MapOrder(node, creds.OrganizationID, creds.ID))
			if batcher.full() {
				if err := flush(); err != nil {
					return orderStreamStats{}, err
				}
			}
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	// Drain whatever partial batch pagination left behind.
	if err := flush(); err != nil {
		return orderStreamStats{}, err
	}

	return stats, nil
}

// orderWindowStart computes the "days back" boundary in the merchant's
// local timezone, so 60 days means 60 merchant days and not 60 UTC days.
// Shop-info failures degrade to UTC rather than failing the stream.
func (o *Orchestrator) orderWindowStart(ctx context.Context, client FetchClient, creds store.Credentials, daysBack int) time.Time {
	loc := time.UTC

	info, err := client.GetShopInfo(ctx)
	if err != nil {
		fmt.Printf("sync: shop info unavailable for %s, using UTC window: %v\n", creds.ShopDomain, err)
	} else if info.IANATimezone != "" {
		if l, lerr := time.LoadLocation(info.IANATimezone); lerr == nil {
			loc = l
		}
	}

	now := time.Now().In(loc)
	startLocal := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -daysBack)
	return startLocal.UTC()
}

func (o *Orchestrator) runProductStream(ctx context.Context, client FetchClient, creds store.Credentials) (int, error) {
	var products []shopify.ProductRecord

	cursor := ""
	for {
		page, err := client.GetProducts(ctx, o.cfg.PageSize, cursor)
		if err != nil {
			return 0, err
		}
		if len(page.Errors) > 0 {
			// Unlike orders, a vendor error on the product stream means
			// the page is unusable; fail the stream.
			return 0, fmt.Errorf("products query: %v", page.Errors)
		}

		for _, node := range page.Nodes {
			products = append(products, shopify.MapProduct(node, creds.OrganizationID, creds.ID))
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	o.fillInventoryLevels(ctx, client, products)

	if err := o.persist.StoreProducts(ctx, creds.OrganizationID, creds.ID, products); err != nil {
		return 0, fmt.Errorf("store products: %w", err)
	}

	if err := o.createCostComponents(ctx, creds, products); err != nil {
		return 0, err
	}

	return len(products), nil
}

// fillInventoryLevels is the second pass: inventory levels need their own
// batched query keyed by inventory-item id, because fetching them inline
// with products makes the combined query too expensive. A failed batch is
// skipped, not fatal.
func (o *Orchestrator) fillInventoryLevels(ctx context.Context, client FetchClient, products []shopify.ProductRecord) {
	byItem := map[string]*shopify.VariantRecord{}
	itemIDs := make([]string, 0, len(products))
	for pi := range products {
		for vi := range products[pi].Variants {
			v := &products[pi].Variants[vi]
			if v.InventoryItemID == "" {
				continue
			}
			byItem[v.InventoryItemID] = v
			itemIDs = append(itemIDs, v.InventoryItemID)
		}
	}

	batchSize := o.cfg.InventoryBatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	for start := 0; start < len(itemIDs); start += batchSize {
		end := start + batchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}

		levels, err := client.GetInventoryLevels(ctx, itemIDs[start:end])
		if err != nil {
			fmt.Printf("sync: inventory level batch %d-%d failed, skipping: %v\n", start, end, err)
			continue
		}

		for itemID, lvls := range levels {
			if v, ok := byItem[itemID]; ok {
				v.InventoryLevels = lvls
			}
		}
	}
}

// createCostComponents records a COGS entry per variant with a known
// positive unit cost, and logs coverage for observability.
func (o *Orchestrator) createCostComponents(ctx context.Context, creds store.Credentials, products []shopify.ProductRecord) error {
	var comps []shopify.CostComponentRecord
	variants := 0

	for _, p := range products {
		for _, v := range p.Variants {
			variants++
			if v.UnitCost <= 0 {
				continue
			}
			comps = append(comps, shopify.CostComponentRecord{
				OrganizationID: creds.OrganizationID,
				StoreID:        creds.ID,
				ProductID:      p.ProductID,
				VariantID:      v.VariantID,
				UnitCost:       v.UnitCost,
				Source:         "shopify_inventory_item",
			})
		}
	}

	if variants > 0 {
		pct := float64(len(comps)) / float64(variants) * 100
		fmt.Printf("sync: COGS coverage for store %s: %d/%d variants (%.1f%%)\n", creds.ID, len(comps), variants, pct)
	}

	if len(comps) == 0 {
		return nil
	}
	if err := o.persist.CreateProductCostComponents(ctx, creds.OrganizationID, creds.ID, comps); err != nil {
		return fmt.Errorf("create cost components: %w", err)
	}
	return nil
}

func (o *Orchestrator) runCustomerStream(ctx context.Context, client FetchClient, creds store.Credentials) (int, error) {
	var customers []shopify.CustomerRecord

	cursor := ""
	for {
		page, err := client.GetCustomers(ctx, o.cfg.PageSize, cursor)
		if err != nil {
			return 0, err
		}
		if len(page.Errors) > 0 {
			return 0, fmt.Errorf("customers query: %v", page.Errors)
		}

		for _, node := range page.Nodes {
			customers = append(customers, shopify.MapCustomer(node, creds.OrganizationID, creds.ID))
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	// Customer volume stays low enough for a single mutation per sync.
	if err := o.persist.StoreCustomers(ctx, creds.OrganizationID, creds.ID, customers); err != nil {
		return 0, fmt.Errorf("store customers: %w", err)
	}

	return len(customers), nil
}

func (o *Orchestrator) persistOrderPayload(ctx context.Context, p *OrderBatchPayload) error {
	if len(p.Orders) > 0 {
		if err := o.persist.StoreOrders(ctx, p.OrganizationID, p.StoreID, p.Orders); err != nil {
			return fmt.Errorf("store orders: %w", err)
		}
	}
	if len(p.Transactions) > 0 {
		if err := o.persist.StoreTransactions(ctx, p.OrganizationID, p.StoreID, p.Transactions); err != nil {
			return fmt.Errorf("store transactions: %w", err)
		}
	}
	if len(p.Refunds) > 0 {
		if err := o.persist.StoreRefunds(ctx, p.OrganizationID, p.StoreID, p.Refunds); err != nil {
			return fmt.Errorf("store refunds: %w", err)
		}
	}
	if len(p.Fulfillments) > 0 {
		if err := o.persist.StoreFulfillments(ctx, p.OrganizationID, p.StoreID, p.Fulfillments); err != nil {
			return fmt.Errorf("store fulfillments: %w", err)
		}
	}
	return nil
}

// postSync steps are best-effort: a failed last-sync stamp or coverage
// check is logged, never escalated.
func (o *Orchestrator) postSync(ctx context.Context, storeID string) {
	if err := o.persist.UpdateStoreLastSync(ctx, storeID, time.Now().UTC()); err != nil {
		fmt.Printf("sync: update last-sync for store %s failed: %v\n", storeID, err)
	}

	withCost, total, err := o.persist.CostCoverage(ctx, storeID)
	if err != nil {
		fmt.Printf("sync: cost coverage check for store %s failed: %v\n", storeID, err)
		return
	}
	if total > 0 {
		pct := float64(withCost) / float64(total) * 100
		if pct < 50 {
			fmt.Printf("sync: WARN cost data completeness for store %s is %.1f%% (<50%%)\n", storeID, pct)
		}
	}
}
