package types

import (
	ierr "github.com/promokit/voucheradmin/internal/errors"
)

// Platform identifies the marketplace a voucher belongs to
type Platform string

const (
	PlatformShopee Platform = "SHOPEE"
	PlatformLazada Platform = "LAZADA"
	PlatformTiktok Platform = "TIKTOK"
	PlatformTiki   Platform = "TIKI"
	PlatformOther  Platform = "OTHER"
)

// Platforms lists every platform in display order
func Platforms() []Platform {
	return []Platform{PlatformShopee, PlatformLazada, PlatformTiktok, PlatformTiki, PlatformOther}
}

func (p Platform) String() string {
	return string(p)
}

func (p Platform) Validate() error {
	switch p {
	case PlatformShopee, PlatformLazada, PlatformTiktok, PlatformTiki, PlatformOther:
		return nil
	default:
		return ierr.NewError("invalid platform").
			WithHintf("Platform must be one of SHOPEE, LAZADA, TIKTOK, TIKI, OTHER, got %s", p).
			Mark(ierr.ErrValidation)
	}
}

// DiscountType describes how discount_value is interpreted
type DiscountType string

const (
	// DiscountTypePercent interprets discount_value as a percentage of the order
	DiscountTypePercent DiscountType = "PERCENT"
	// DiscountTypeFixed interprets discount_value as a currency amount
	DiscountTypeFixed DiscountType = "FIXED"
)

func DiscountTypes() []DiscountType {
	return []DiscountType{DiscountTypePercent, DiscountTypeFixed}
}

func (d DiscountType) String() string {
	return string(d)
}

func (d DiscountType) Validate() error {
	switch d {
	case DiscountTypePercent, DiscountTypeFixed:
		return nil
	default:
		return ierr.NewError("invalid discount type").
			WithHintf("Discount type must be PERCENT or FIXED, got %s", d).
			Mark(ierr.ErrValidation)
	}
}

// VoucherStatus is the backend-owned lifecycle state. The client only ever
// requests a status on update; transitions are decided server side.
type VoucherStatus string

const (
	VoucherStatusDraft    VoucherStatus = "DRAFT"
	VoucherStatusActive   VoucherStatus = "ACTIVE"
	VoucherStatusInactive VoucherStatus = "INACTIVE"
	VoucherStatusExpired  VoucherStatus = "EXPIRED"
)

func VoucherStatuses() []VoucherStatus {
	return []VoucherStatus{VoucherStatusDraft, VoucherStatusActive, VoucherStatusInactive, VoucherStatusExpired}
}

func (s VoucherStatus) String() string {
	return string(s)
}

func (s VoucherStatus) Validate() error {
	switch s {
	case VoucherStatusDraft, VoucherStatusActive, VoucherStatusInactive, VoucherStatusExpired:
		return nil
	default:
		return ierr.NewError("invalid voucher status").
			WithHintf("Status must be one of DRAFT, ACTIVE, INACTIVE, EXPIRED, got %s", s).
			Mark(ierr.ErrValidation)
	}
}
