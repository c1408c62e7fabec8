package types

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestVoucherFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  VoucherFilter
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			filter: *NewDefaultVoucherFilter(),
		},
		{
			name: "all fields set",
			filter: VoucherFilter{
				Status:    lo.ToPtr(VoucherStatusActive),
				Platform:  lo.ToPtr(PlatformShopee),
				Q:         lo.ToPtr("summer"),
				ActiveNow: lo.ToPtr(true),
				Page:      3,
				Size:      50,
				Sort:      "code,asc",
			},
		},
		{
			name:    "negative page",
			filter:  VoucherFilter{Page: -1, Size: 20},
			wantErr: true,
		},
		{
			name:    "zero size",
			filter:  VoucherFilter{Size: 0},
			wantErr: true,
		},
		{
			name:    "size over limit",
			filter:  VoucherFilter{Size: 1001},
			wantErr: true,
		},
		{
			name:    "bad status",
			filter:  VoucherFilter{Size: 20, Status: lo.ToPtr(VoucherStatus("GONE"))},
			wantErr: true,
		},
		{
			name:    "bad platform",
			filter:  VoucherFilter{Size: 20, Platform: lo.ToPtr(Platform("EBAY"))},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVoucherFilterWithDefaults(t *testing.T) {
	f := &VoucherFilter{}
	f.WithDefaults()

	assert.Equal(t, FilterDefaultSize, f.Size)
	assert.Equal(t, FilterDefaultSort, f.Sort)
	assert.Equal(t, FilterDefaultPage, f.Page)

	// explicit values survive
	g := &VoucherFilter{Page: 2, Size: 50, Sort: "code,asc"}
	g.WithDefaults()
	assert.Equal(t, 2, g.Page)
	assert.Equal(t, 50, g.Size)
	assert.Equal(t, "code,asc", g.Sort)
}

func TestVoucherFilterCacheParams(t *testing.T) {
	a := NewDefaultVoucherFilter()
	b := NewDefaultVoucherFilter()
	assert.Equal(t, a.CacheParams(), b.CacheParams())

	b.Q = lo.ToPtr("summer")
	assert.NotEqual(t, a.CacheParams(), b.CacheParams())

	c := NewDefaultVoucherFilter()
	c.Page = 1
	assert.NotEqual(t, a.CacheParams(), c.CacheParams())

	d := NewDefaultVoucherFilter()
	d.Status = lo.ToPtr(VoucherStatusDraft)
	assert.NotEqual(t, a.CacheParams(), d.CacheParams())
}
