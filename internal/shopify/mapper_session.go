package shopify

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// InferredSessionID derives a stable session id from an order id, so that
// re-running a session sync over the same orders upserts instead of
// duplicating. Same scheme as the short stable hashes used elsewhere in
// the backend.
func InferredSessionID(orderID string) string {
	h := sha1.Sum([]byte("session:" + orderID))
	return "inf-" + hex.EncodeToString(h[:8])
}

// MapSessionFromOrder synthesizes one session from an order's attribution
// data when no native analytics session exists. Returns false when the
// order has no id to anchor the session to.
func MapSessionFromOrder(order OrderRecord) (SessionRecord, bool) {
	if order.OrderID == "" {
		return SessionRecord{}, false
	}

	date := ""
	if order.ProcessedAt != nil {
		date = time.UnixMilli(*order.ProcessedAt).UTC().Format("2006-01-02")
	} else if order.CreatedAt != nil {
		date = time.UnixMilli(*order.CreatedAt).UTC().Format("2006-01-02")
	}

	rec := SessionRecord{
		OrganizationID: order.OrganizationID,
		StoreID:        order.StoreID,
		SessionID:      InferredSessionID(order.OrderID),
		OrderID:        order.OrderID,
		Date:           date,
		UTMSource:      order.UTMSource,
		UTMMedium:      order.UTMMedium,
		UTMCampaign:    order.UTMCampaign,
		LandingPage:    order.LandingSite,
		ReferrerURL:    order.ReferringSite,
		Sessions:       1,
		Visitors:       1,
		Orders:         1,
		ConversionRate: 1,
		Inferred:       true,
	}

	if order.SourceURL != nil {
		rec.TrafficSource = *order.SourceURL
	}

	return rec, true
}
