package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/promokit/voucheradmin/internal/config"
)

func newTestCache(t *testing.T, enabled bool) Cache {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	return NewInMemoryCache(cfg)
}

func TestInMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, true)

	c.Set(ctx, "k1", "v1", time.Minute)

	got, found := c.Get(ctx, "k1")
	assert.True(t, found)
	assert.Equal(t, "v1", got)

	_, found = c.Get(ctx, "missing")
	assert.False(t, found)
}

func TestInMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, true)

	c.Set(ctx, "k1", "v1", time.Minute)
	c.Delete(ctx, "k1")

	_, found := c.Get(ctx, "k1")
	assert.False(t, found)
}

func TestInMemoryCacheDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, true)

	c.Set(ctx, PrefixVoucherList+"a", 1, time.Minute)
	c.Set(ctx, PrefixVoucherList+"b", 2, time.Minute)
	c.Set(ctx, PrefixVoucherDetail+"1", 3, time.Minute)

	c.DeleteByPrefix(ctx, PrefixVoucherList)

	_, found := c.Get(ctx, PrefixVoucherList+"a")
	assert.False(t, found)
	_, found = c.Get(ctx, PrefixVoucherList+"b")
	assert.False(t, found)

	// other namespaces survive
	_, found = c.Get(ctx, PrefixVoucherDetail+"1")
	assert.True(t, found)
}

func TestInMemoryCacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, false)

	c.Set(ctx, "k1", "v1", time.Minute)

	_, found := c.Get(ctx, "k1")
	assert.False(t, found)
}

func TestGenerateKey(t *testing.T) {
	k1 := GenerateKey(PrefixVoucherDetail, 42)
	k2 := GenerateKey(PrefixVoucherDetail, 42)
	k3 := GenerateKey(PrefixVoucherDetail, 43)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, PrefixVoucherDetail)
}
