package voucher

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/promokit/voucheradmin/internal/types"
)

// Voucher represents a promotional voucher record. Everything here is
// server-owned: IDs, audit fields, UsedCount and the two derived flags
// are trusted as received and never recomputed locally.
type Voucher struct {
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

// Unlimited reports whether the voucher has no usage cap
func (v *Voucher) Unlimited() bool {
	return v.UsageLimit == nil
}

// UpdateInput is the partial update payload. Code deliberately has no
// field here: it is immutable after creation, so the type cannot express
// changing it.
type UpdateInput struct {
	Title          *string              `json:"title,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Platform       *types.Platform      `json:"platform,omitempty"`
	DiscountType   *types.DiscountType  `json:"discount_type,omitempty"`
	DiscountValue  *decimal.Decimal     `json:"discount_value,omitempty"`
	MinOrderAmount *decimal.Decimal     `json:"min_order_amount,omitempty"`
	StartAt        *time.Time           `json:"start_at,omitempty"`
	EndAt          *time.Time           `json:"end_at,omitempty"`
	UsageLimit     *int                 `json:"usage_limit,omitempty"`
	Tags           *[]string            `json:"tags,omitempty"`
	Status         *types.VoucherStatus `json:"status,omitempty"`
}
