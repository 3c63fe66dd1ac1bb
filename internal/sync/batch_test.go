package sync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/shopify"
)

func bundleWithID(id string) shopify.OrderBundle {
	return shopify.OrderBundle{
		Order: shopify.OrderRecord{OrderID: id},
		Transactions: []shopify.TransactionRecord{
			{OrderID: id, TransactionID: "t-" + id},
		},
	}
}

func TestOrderBatcherFullness(t *testing.T) {
	b := newOrderBatcher(3)

	assert.True(t, b.empty())
	assert.False(t, b.full())

	b.add(bundleWithID("1"))
	b.add(bundleWithID("2"))
	assert.False(t, b.full())

	b.add(bundleWithID("3"))
	assert.True(t, b.full())
	assert.False(t, b.empty())
}

func TestOrderBatcherDefaultSize(t *testing.T) {
	b := newOrderBatcher(0)
	for i := 0; i < 24; i++ {
		b.add(bundleWithID(fmt.Sprintf("%d", i)))
	}
	assert.False(t, b.full())
	b.add(bundleWithID("24"))
	assert.True(t, b.full())
}

func TestOrderBatcherSnapshotIsImmutable(t *testing.T) {
	b := newOrderBatcher(2)
	b.add(bundleWithID("1"))
	b.add(bundleWithID("2"))

	snap := b.snapshot("org-1", "store-1", "sess-1")
	require.Len(t, snap.Orders, 2)
	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, "org-1", snap.OrganizationID)
	assert.Equal(t, "sess-1", snap.SyncSessionID)

	// Clearing and refilling the accumulator must not leak into the
	// snapshot already handed to the queue.
	b.reset()
	assert.True(t, b.empty())
	b.add(bundleWithID("99"))

	assert.Equal(t, "1", snap.Orders[0].OrderID)
	assert.Equal(t, "2", snap.Orders[1].OrderID)
	assert.Equal(t, "t-1", snap.Transactions[0].TransactionID)
}

func TestOrderBatcherFlushCount(t *testing.T) {
	b := newOrderBatcher(25)

	flushes := 0
	for i := 0; i < 60; i++ {
		b.add(bundleWithID(fmt.Sprintf("%d", i)))
		if b.full() {
			flushes++
			b.reset()
		}
	}
	if !b.empty() {
		flushes++
		b.reset()
	}

	// 60 orders at batch size 25 means ceil(60/25) = 3 flushes.
	assert.Equal(t, 3, flushes)
}
