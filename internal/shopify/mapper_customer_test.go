package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCustomer(t *testing.T) {
	node := CustomerNode{
		ID:             "gid://shopify/Customer/321",
		Email:          "jo@example.com",
		FirstName:      "Jo",
		LastName:       "Smith",
		NumberOfOrders: CountField{Count: 4},
		AmountSpent:    MoneyV2{Amount: "250.50", CurrencyCode: "USD"},
		EmailMarketingConsent: &struct {
			MarketingState string `json:"marketingState"`
		}{MarketingState: "SUBSCRIBED"},
		DefaultAddress: &MailingAddress{City: "Berlin", Country: "Germany"},
		CreatedAt:      "2024-11-01T00:00:00Z",
	}

	rec := MapCustomer(node, "org-1", "store-1")
	assert.Equal(t, "321", rec.CustomerID)
	assert.Equal(t, 4, rec.OrdersCount)
	assert.Equal(t, 250.5, rec.TotalSpent)
	assert.True(t, rec.AcceptsMarketing)
	assert.Equal(t, "Berlin", rec.City)
	assert.Equal(t, "Germany", rec.Country)
	assert.Nil(t, rec.UpdatedAt)
}

func TestMapCustomerConsentStates(t *testing.T) {
	node := CustomerNode{ID: "gid://shopify/Customer/1"}

	rec := MapCustomer(node, "org-1", "store-1")
	assert.False(t, rec.AcceptsMarketing)

	node.EmailMarketingConsent = &struct {
		MarketingState string `json:"marketingState"`
	}{MarketingState: "NOT_SUBSCRIBED"}
	rec = MapCustomer(node, "org-1", "store-1")
	assert.False(t, rec.AcceptsMarketing)
}
