package sync

import "backend/internal/shopify"

// OrderBatchPayload is one unit of background persistence work. It must
// be plain JSON-serializable data; the queue transports values, not
// references.
type OrderBatchPayload struct {
	OrganizationID string                      `json:"organizationId"`
	StoreID        string                      `json:"storeId"`
	SyncSessionID  string                      `json:"syncSessionId,omitempty"`
	Orders         []shopify.OrderRecord       `json:"orders"`
	Transactions   []shopify.TransactionRecord `json:"transactions,omitempty"`
	Refunds        []shopify.RefundRecord      `json:"refunds,omitempty"`
	Fulfillments   []shopify.FulfillmentRecord `json:"fulfillments,omitempty"`
}

// orderBatcher accumulates mapped order bundles during the paginated
// fetch loop. It is mutated by a single logical flow; fullness is judged
// on the order count only, so sibling arrays ride along whatever size
// they reach.
type orderBatcher struct {
	size         int
	orders       []shopify.OrderRecord
	transactions []shopify.TransactionRecord
	refunds      []shopify.RefundRecord
	fulfillments []shopify.FulfillmentRecord
}

func newOrderBatcher(size int) *orderBatcher {
	if size <= 0 {
		size = 25
	}
	return &orderBatcher{size: size}
}

func (b *orderBatcher) add(bundle shopify.OrderBundle) {
	b.orders = append(b.orders, bundle.Order)
	b.transactions = append(b.transactions, bundle.Transactions...)
	b.refunds = append(b.refunds, bundle.Refunds...)
	b.fulfillments = append(b.fulfillments, bundle.Fulfillments...)
}

func (b *orderBatcher) full() bool {
	return len(b.orders) >= b.size
}

func (b *orderBatcher) empty() bool {
	return len(b.orders) == 0 &&
		len(b.transactions) == 0 &&
		len(b.refunds) == 0 &&
		len(b.fulfillments) == 0
}

// snapshot copies the accumulator arrays into a fresh payload. The copy
// matters: the accumulator is cleared in place right after a flush, and
// an enqueued job must never observe that mutation.
func (b *orderBatcher) snapshot(orgID, storeID, syncSessionID string) *OrderBatchPayload {
	return &OrderBatchPayload{
		OrganizationID: orgID,
		StoreID:        storeID,
		SyncSessionID:  syncSessionID,
		Orders:         append([]shopify.OrderRecord(nil), b.orders...),
		Transactions:   append([]shopify.TransactionRecord(nil), b.transactions...),
		Refunds:        append([]shopify.RefundRecord(nil), b.refunds...),
		Fulfillments:   append([]shopify.FulfillmentRecord(nil), b.fulfillments...),
	}
}

func (b *orderBatcher) reset() {
	b.orders = b.orders[:0]
	b.transactions = b.transactions[:0]
	b.refunds = b.refunds[:0]
	b.fulfillments = b.fulfillments[:0]
}
