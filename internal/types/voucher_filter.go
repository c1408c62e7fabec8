package types

import (
	"github.com/samber/lo"

	ierr "github.com/promokit/voucheradmin/internal/errors"
)

const (
	FilterDefaultPage = 0
	FilterDefaultSize = 20
	FilterDefaultSort = "created_at,desc"
)

// VoucherFilter carries the listing query: free text search, structured
// filters and page/size/sort. It binds from the gateway query string
// (form tags) and encodes onto the backend query string (url tags).
type VoucherFilter struct {
	Status    *VoucherStatus `json:"status,omitempty" form:"status" url:"status,omitempty"`
	Platform  *Platform      `json:"platform,omitempty" form:"platform" url:"platform,omitempty"`
	Q         *string        `json:"q,omitempty" form:"q" url:"q,omitempty"`
	ActiveNow *bool          `json:"active_now,omitempty" form:"active_now" url:"active_now,omitempty"`
	Page      int            `json:"page" form:"page" url:"page"`
	Size      int            `json:"size" form:"size,default=20" url:"size"`
	Sort      string         `json:"sort" form:"sort" url:"sort"`
}

// NewDefaultVoucherFilter returns the filter the list view opens with
func NewDefaultVoucherFilter() *VoucherFilter {
	return &VoucherFilter{
		Page: FilterDefaultPage,
		Size: FilterDefaultSize,
		Sort: FilterDefaultSort,
	}
}

func (f *VoucherFilter) Validate() error {
	if f.Page < 0 {
		return ierr.NewError("page must not be negative").
			WithHint("Page numbers start at 0").
			Mark(ierr.ErrValidation)
	}
	if f.Size <= 0 || f.Size > 1000 {
		return ierr.NewError("size out of range").
			WithHint("Page size must be between 1 and 1000").
			Mark(ierr.ErrValidation)
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Platform != nil {
		if err := f.Platform.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithDefaults fills the zero values gin's query binding leaves behind
func (f *VoucherFilter) WithDefaults() *VoucherFilter {
	if f.Size == 0 {
		f.Size = FilterDefaultSize
	}
	if f.Sort == "" {
		f.Sort = FilterDefaultSort
	}
	return f
}

// CacheParams flattens the full parameter set into an ordered slice for
// cache key generation. Every field participates so that two filters
// differing in any dimension never collide.
func (f *VoucherFilter) CacheParams() []interface{} {
	return []interface{}{
		lo.FromPtrOr(f.Status, ""),
		lo.FromPtrOr(f.Platform, ""),
		lo.FromPtr(f.Q),
		f.ActiveNow != nil && *f.ActiveNow,
		f.Page,
		f.Size,
		f.Sort,
	}
}
