package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/promokit/voucheradmin/internal/domain/voucher"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/types"
	"github.com/promokit/voucheradmin/internal/validator"
)

// CreateVoucherRequest represents the request to create a new voucher
type CreateVoucherRequest struct {
	Code           string              `json:"code" validate:"required,min=1,max=64"`
	Title          string              `json:"title" validate:"required,min=1,max=200"`
	Description    string              `json:"description,omitempty"`
	Platform       types.Platform      `json:"platform" validate:"required,oneof=SHOPEE LAZADA TIKTOK TIKI OTHER"`
	DiscountType   types.DiscountType  `json:"discount_type" validate:"required,oneof=PERCENT FIXED"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	MinOrderAmount decimal.Decimal     `json:"min_order_amount"`
	StartAt        time.Time           `json:"start_at" validate:"required"`
	EndAt          time.Time           `json:"end_at" validate:"required"`
	UsageLimit     *int                `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	Tags           []string            `json:"tags,omitempty"`
	Status         types.VoucherStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
}

// Validate validates the CreateVoucherRequest. The percentage upper bound
// is deliberately not checked: the boundary stays permissive and the
// backend owns that rule.
func (r *CreateVoucherRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DiscountValue.IsNegative() {
		return ierr.NewError("discount_value must not be negative").
			WithHint("Please provide a discount value of at least 0").
			Mark(ierr.ErrValidation)
	}

	if r.MinOrderAmount.IsNegative() {
		return ierr.NewError("min_order_amount must not be negative").
			WithHint("Please provide a minimum order amount of at least 0").
			Mark(ierr.ErrValidation)
	}

	if r.StartAt.IsZero() || r.EndAt.IsZero() {
		return ierr.NewError("start_at and end_at are required").
			WithHint("Please provide the validity window").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToVoucher converts the request into a domain voucher for the remote layer
func (r *CreateVoucherRequest) ToVoucher() *voucher.Voucher {
	return &voucher.Voucher{
		Code:           r.Code,
		Title:          r.Title,
		Description:    r.Description,
		Platform:       r.Platform,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MinOrderAmount: r.MinOrderAmount,
		StartAt:        r.StartAt,
		EndAt:          r.EndAt,
		UsageLimit:     r.UsageLimit,
		Tags:           r.Tags,
		Status:         r.Status,
	}
}

// UpdateVoucherRequest represents the request to update an existing
// voucher. Code is absent: it is immutable after creation.
type UpdateVoucherRequest struct {
	Title          *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string              `json:"description,omitempty"`
	Platform       *types.Platform      `json:"platform,omitempty" validate:"omitempty,oneof=SHOPEE LAZADA TIKTOK TIKI OTHER"`
	DiscountType   *types.DiscountType  `json:"discount_type,omitempty" validate:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue  *decimal.Decimal     `json:"discount_value,omitempty"`
	MinOrderAmount *decimal.Decimal     `json:"min_order_amount,omitempty"`
	StartAt        *time.Time           `json:"start_at,omitempty"`
	EndAt          *time.Time           `json:"end_at,omitempty"`
	UsageLimit     *int                 `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	Tags           *[]string            `json:"tags,omitempty"`
	Status         *types.VoucherStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE EXPIRED"`
}

// Validate validates the UpdateVoucherRequest
func (r *UpdateVoucherRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DiscountValue != nil && r.DiscountValue.IsNegative() {
		return ierr.NewError("discount_value must not be negative").
			WithHint("Please provide a discount value of at least 0").
			Mark(ierr.ErrValidation)
	}

	if r.MinOrderAmount != nil && r.MinOrderAmount.IsNegative() {
		return ierr.NewError("min_order_amount must not be negative").
			WithHint("Please provide a minimum order amount of at least 0").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToUpdateInput converts the request into the domain update payload
func (r *UpdateVoucherRequest) ToUpdateInput() *voucher.UpdateInput {
	return &voucher.UpdateInput{
		Title:          r.Title,
		Description:    r.Description,
		Platform:       r.Platform,
		DiscountType:   r.DiscountType,
		DiscountValue:  r.DiscountValue,
		MinOrderAmount: r.MinOrderAmount,
		StartAt:        r.StartAt,
		EndAt:          r.EndAt,
		UsageLimit:     r.UsageLimit,
		Tags:           r.Tags,
		Status:         r.Status,
	}
}

// VoucherResponse mirrors the backend's voucher payload
type VoucherResponse struct {
	ID             int64               `json:"id"`
	Code           string              `json:"code"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Platform       types.Platform      `json:"platform"`
	DiscountType   types.DiscountType  `json:"discount_type"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	MinOrderAmount decimal.Decimal     `json:"min_order_amount"`
	StartAt        time.Time           `json:"start_at"`
	EndAt          time.Time           `json:"end_at"`
	UsageLimit     *int                `json:"usage_limit,omitempty"`
	UsedCount      int                 `json:"used_count"`
	Status         types.VoucherStatus `json:"status"`
	Tags           []string            `json:"tags,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	CreatedBy      string              `json:"created_by,omitempty"`
	UpdatedBy      string              `json:"updated_by,omitempty"`
	IsActive       bool                `json:"is_active"`
	IsExpired      bool                `json:"is_expired"`
}

// ListVouchersResponse is one page of vouchers
type ListVouchersResponse = types.Page[VoucherResponse]

// NewVoucherResponse builds a response from a domain voucher
func NewVoucherResponse(v *voucher.Voucher) *VoucherResponse {
	if v == nil {
		return nil
	}
	resp := VoucherResponse(*v)
	return &resp
}

// ToDomain converts a response back into a domain voucher
func (r *VoucherResponse) ToDomain() *voucher.Voucher {
	if r == nil {
		return nil
	}
	v := voucher.Voucher(*r)
	return &v
}

// NewListVouchersResponse maps a domain page into the response envelope
func NewListVouchersResponse(page *types.Page[voucher.Voucher]) *ListVouchersResponse {
	mapped := types.MapPage(*page, func(v voucher.Voucher) VoucherResponse {
		return *NewVoucherResponse(&v)
	})
	return lo.ToPtr(mapped)
}
