package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformValidate(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		wantErr  bool
	}{
		{name: "shopee", platform: PlatformShopee},
		{name: "lazada", platform: PlatformLazada},
		{name: "tiktok", platform: PlatformTiktok},
		{name: "tiki", platform: PlatformTiki},
		{name: "other", platform: PlatformOther},
		{name: "empty", platform: Platform(""), wantErr: true},
		{name: "lowercase", platform: Platform("shopee"), wantErr: true},
		{name: "unknown", platform: Platform("AMAZON"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.platform.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscountTypeValidate(t *testing.T) {
	tests := []struct {
		name         string
		discountType DiscountType
		wantErr      bool
	}{
		{name: "percent", discountType: DiscountTypePercent},
		{name: "fixed", discountType: DiscountTypeFixed},
		{name: "empty", discountType: DiscountType(""), wantErr: true},
		{name: "unknown", discountType: DiscountType("BOGO"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.discountType.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVoucherStatusValidate(t *testing.T) {
	for _, status := range VoucherStatuses() {
		assert.NoError(t, status.Validate(), "status %s", status)
	}

	assert.Error(t, VoucherStatus("").Validate())
	assert.Error(t, VoucherStatus("ARCHIVED").Validate())
}

func TestEnumLists(t *testing.T) {
	assert.Len(t, Platforms(), 5)
	assert.Len(t, DiscountTypes(), 2)
	assert.Len(t, VoucherStatuses(), 4)
}
