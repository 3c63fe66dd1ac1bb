package syncconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 25, cfg.OrderBatchSize)
	assert.Equal(t, 50, cfg.InventoryBatchSize)
	assert.Equal(t, 60, cfg.DaysBack)
	assert.Equal(t, 30, cfg.FallbackDays)
	assert.Equal(t, DispatchJobs, cfg.OrderDispatch)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SYNC_PAGE_SIZE", "100")
	t.Setenv("SYNC_ORDER_BATCH_SIZE", "10")
	t.Setenv("SYNC_ORDER_DISPATCH", "direct")
	t.Setenv("SYNC_CONFIG_SSM_PREFIX", "")

	cfg := Load(context.Background())
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 10, cfg.OrderBatchSize)
	assert.Equal(t, DispatchDirect, cfg.OrderDispatch)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.DaysBack)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SYNC_PAGE_SIZE", "-5")
	t.Setenv("SYNC_ORDER_BATCH_SIZE", "lots")
	t.Setenv("SYNC_ORDER_DISPATCH", "teleport")
	t.Setenv("SYNC_CONFIG_SSM_PREFIX", "")

	cfg := Load(context.Background())
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 25, cfg.OrderBatchSize)
	assert.Equal(t, DispatchJobs, cfg.OrderDispatch)
}
