package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferredSessionIDStable(t *testing.T) {
	a := InferredSessionID("1001")
	b := InferredSessionID("1001")
	c := InferredSessionID("1002")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "inf-")
}

func TestMapSessionFromOrder(t *testing.T) {
	processed := int64(1748772300000) // 2025-06-01T10:05:00Z
	source := "google"

	order := OrderRecord{
		OrganizationID: "org-1",
		StoreID:        "store-1",
		OrderID:        "1001",
		ProcessedAt:    &processed,
		SourceURL:      &source,
	}

	rec, ok := MapSessionFromOrder(order)
	require.True(t, ok)
	assert.Equal(t, InferredSessionID("1001"), rec.SessionID)
	assert.Equal(t, "1001", rec.OrderID)
	assert.Equal(t, "2025-06-01", rec.Date)
	assert.Equal(t, "google", rec.TrafficSource)
	assert.Equal(t, 1, rec.Sessions)
	assert.Equal(t, 1, rec.Orders)
	assert.Equal(t, 1.0, rec.ConversionRate)
	assert.True(t, rec.Inferred)
}

func TestMapSessionFromOrderFallsBackToCreatedAt(t *testing.T) {
	created := int64(1748736000000) // 2025-06-01T00:00:00Z

	rec, ok := MapSessionFromOrder(OrderRecord{OrderID: "7", CreatedAt: &created})
	require.True(t, ok)
	assert.Equal(t, "2025-06-01", rec.Date)
	assert.Empty(t, rec.TrafficSource)
}

func TestMapSessionFromOrderRequiresID(t *testing.T) {
	_, ok := MapSessionFromOrder(OrderRecord{})
	assert.False(t, ok)
}
