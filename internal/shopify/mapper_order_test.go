package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(amount string) MoneyBag {
	return MoneyBag{ShopMoney: MoneyV2{Amount: amount, CurrencyCode: "USD"}}
}

func sampleOrderNode() OrderNode {
	node := OrderNode{
		ID:                       "gid://shopify/Order/1001",
		Name:                     "#1001",
		CreatedAt:                "2025-06-01T10:00:00Z",
		ProcessedAt:              "2025-06-01T10:05:00Z",
		UpdatedAt:                "2025-06-02T08:00:00Z",
		DisplayFinancialStatus:   "PAID",
		DisplayFulfillmentStatus: "FULFILLED",
		CurrentTotalPriceSet:     money("120.00"),
		SubtotalPriceSet:         money("100.00"),
		TotalTaxSet:              money("10.00"),
		TotalDiscountsSet:        money("5.00"),
		TotalShippingPriceSet:    money("10.00"),
		TotalTipReceivedSet:      money("0.00"),
		Customer: &struct {
			ID string `json:"id"`
		}{ID: "gid://shopify/Customer/55"},
		ShippingAddress: &MailingAddress{City: "Austin", Province: "Texas", Country: "United States", Zip: "78701"},
		Transactions: []TransactionNode{
			{ID: "gid://shopify/OrderTransaction/t1", Kind: "SALE", Status: "SUCCESS", Gateway: "shopify_payments", ProcessedAt: "2025-06-01T10:05:00Z", AmountSet: money("120.00")},
		},
		Refunds: []RefundNode{
			{ID: "gid://shopify/Refund/r1", Note: "damaged", CreatedAt: "2025-06-03T09:00:00Z", TotalRefundedSet: money("20.00")},
		},
		Fulfillments: []FulfillmentNode{
			{ID: "gid://shopify/Fulfillment/f1", Status: "SUCCESS", CreatedAt: "2025-06-02T12:00:00Z"},
		},
	}
	node.LineItems.Edges = []struct {
		Node LineItemNode `json:"node"`
	}{
		{Node: LineItemNode{
			ID:                   "gid://shopify/LineItem/li1",
			Title:                "Widget",
			Quantity:             2,
			OriginalUnitPriceSet: money("50.00"),
		}},
		{Node: LineItemNode{
			ID:                     "gid://shopify/LineItem/li2",
			Title:                  "Gadget",
			Quantity:               1,
			OriginalUnitPriceSet:   money("25.00"),
			DiscountedUnitPriceSet: &MoneyBag{ShopMoney: MoneyV2{Amount: "20.00"}},
		}},
	}
	return node
}

func TestMapOrderFanOut(t *testing.T) {
	bundle := MapOrder(sampleOrderNode(), "org-1", "store-1")

	order := bundle.Order
	assert.Equal(t, "1001", order.OrderID)
	assert.Equal(t, "org-1", order.OrganizationID)
	assert.Equal(t, "store-1", order.StoreID)
	assert.Equal(t, "55", order.CustomerID)
	assert.Equal(t, 120.0, order.TotalPrice)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "Austin", order.ShippingCity)
	assert.Equal(t, 2, order.ItemCount)
	assert.Equal(t, 3, order.TotalQuantity)
	require.NotNil(t, order.CreatedAt)

	require.Len(t, bundle.Transactions, 1)
	txn := bundle.Transactions[0]
	assert.Equal(t, "t1", txn.TransactionID)
	assert.Equal(t, "1001", txn.OrderID)
	assert.Equal(t, 120.0, txn.Amount)

	require.Len(t, bundle.Refunds, 1)
	assert.Equal(t, "r1", bundle.Refunds[0].RefundID)
	assert.Equal(t, 20.0, bundle.Refunds[0].Amount)

	require.Len(t, bundle.Fulfillments, 1)
	assert.Equal(t, "f1", bundle.Fulfillments[0].FulfillmentID)
}

func TestMapOrderLineItemDiscount(t *testing.T) {
	bundle := MapOrder(sampleOrderNode(), "org-1", "store-1")
	require.Len(t, bundle.Order.LineItems, 2)

	full := bundle.Order.LineItems[0]
	assert.Nil(t, full.DiscountedPrice)
	assert.Equal(t, 0.0, full.TotalDiscount)

	discounted := bundle.Order.LineItems[1]
	require.NotNil(t, discounted.DiscountedPrice)
	assert.Equal(t, 20.0, *discounted.DiscountedPrice)
	assert.Equal(t, 5.0, discounted.TotalDiscount)
}

func TestMapOrderDiscountNeverNegative(t *testing.T) {
	node := sampleOrderNode()
	// Vendor reports a discounted price above the base price.
	node.LineItems.Edges = node.LineItems.Edges[:1]
	node.LineItems.Edges[0].Node.DiscountedUnitPriceSet = &MoneyBag{ShopMoney: MoneyV2{Amount: "60.00"}}

	bundle := MapOrder(node, "org-1", "store-1")
	require.Len(t, bundle.Order.LineItems, 1)
	assert.Equal(t, 0.0, bundle.Order.LineItems[0].TotalDiscount)
}

func TestMapOrderAttributionAbsent(t *testing.T) {
	node := sampleOrderNode()
	node.CustomerJourneySummary = nil

	order := MapOrder(node, "org-1", "store-1").Order
	assert.Nil(t, order.SourceURL)
	assert.Nil(t, order.LandingSite)
	assert.Nil(t, order.ReferringSite)
	assert.Nil(t, order.UTMSource)
	assert.Nil(t, order.UTMMedium)
	assert.Nil(t, order.UTMCampaign)

	// A journey block with no first visit behaves the same.
	node.CustomerJourneySummary = &CustomerJourneySummary{}
	order = MapOrder(node, "org-1", "store-1").Order
	assert.Nil(t, order.SourceURL)
}

func TestMapOrderAttributionPresent(t *testing.T) {
	node := sampleOrderNode()
	node.CustomerJourneySummary = &CustomerJourneySummary{
		FirstVisit: &MomentFirstVisit{
			Source:      "google",
			LandingPage: "https://shop.example/landing",
			UTMParameters: &UTMParameters{
				Source:   "google",
				Medium:   "cpc",
				Campaign: "summer",
			},
		},
	}

	order := MapOrder(node, "org-1", "store-1").Order
	require.NotNil(t, order.SourceURL)
	assert.Equal(t, "google", *order.SourceURL)
	require.NotNil(t, order.UTMCampaign)
	assert.Equal(t, "summer", *order.UTMCampaign)
	// Empty strings inside the block still map to nil.
	assert.Nil(t, order.ReferringSite)
}

func TestMapOrderMissingTimestampsAreNil(t *testing.T) {
	node := sampleOrderNode()
	node.ClosedAt = ""
	node.CancelledAt = ""

	order := MapOrder(node, "org-1", "store-1").Order
	assert.Nil(t, order.ClosedAt)
	assert.Nil(t, order.CancelledAt)
	require.NotNil(t, order.ProcessedAt)
}

func TestMapOrderDeterministic(t *testing.T) {
	a := MapOrder(sampleOrderNode(), "org-1", "store-1")
	b := MapOrder(sampleOrderNode(), "org-1", "store-1")
	assert.Equal(t, a, b)
}
