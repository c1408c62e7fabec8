package console

import (
	"context"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/promokit/voucheradmin/internal/api/dto"
	"github.com/promokit/voucheradmin/internal/service"
	"github.com/promokit/voucheradmin/internal/types"
)

// VoucherList drives the list view: free-text search, structured
// filters, pagination state, filter-panel visibility and the two-phase
// delete confirmation. Search submission and every filter change reset
// the page to 0; page changes leave everything else alone.
type VoucherList struct {
	service service.VoucherService

	searchInput    string
	filter         *types.VoucherFilter
	filtersVisible bool
	pendingDelete  *dto.VoucherResponse

	page    *dto.ListVouchersResponse
	loadErr error

	// seq tags each issued load so a slow superseded response can be
	// recognized and discarded instead of overwriting newer state.
	seq uint64
}

func NewVoucherList(svc service.VoucherService) *VoucherList {
	return &VoucherList{
		service: svc,
		filter:  types.NewDefaultVoucherFilter(),
	}
}

// SearchInput returns the uncommitted search text
func (l *VoucherList) SearchInput() string {
	return l.searchInput
}

// SetSearchInput updates the search box without touching the query
func (l *VoucherList) SetSearchInput(q string) {
	l.searchInput = q
}

// SubmitSearch merges the search text into the active filter set
func (l *VoucherList) SubmitSearch() {
	if l.searchInput == "" {
		l.filter.Q = nil
	} else {
		l.filter.Q = lo.ToPtr(l.searchInput)
	}
	l.filter.Page = 0
}

func (l *VoucherList) SetPlatform(p *types.Platform) {
	l.filter.Platform = p
	l.filter.Page = 0
}

func (l *VoucherList) SetStatus(s *types.VoucherStatus) {
	l.filter.Status = s
	l.filter.Page = 0
}

func (l *VoucherList) SetActiveNow(active *bool) {
	l.filter.ActiveNow = active
	l.filter.Page = 0
}

func (l *VoucherList) SetSort(sort string) {
	l.filter.Sort = sort
	l.filter.Page = 0
}

// SetPage moves to another page of the same query
func (l *VoucherList) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	l.filter.Page = page
}

func (l *VoucherList) SetSize(size int) {
	l.filter.Size = size
	l.filter.Page = 0
}

func (l *VoucherList) ToggleFilters() {
	l.filtersVisible = !l.filtersVisible
}

func (l *VoucherList) FiltersVisible() bool {
	return l.filtersVisible
}

// Filter returns a copy of the active query
func (l *VoucherList) Filter() types.VoucherFilter {
	return *l.filter
}

// Page returns the last loaded page, nil before the first load
func (l *VoucherList) Page() *dto.ListVouchersResponse {
	return l.page
}

// LoadError returns the error from the last failed load
func (l *VoucherList) LoadError() error {
	return l.loadErr
}

// Load fetches the current query. A response belonging to a request that
// was superseded while in flight is dropped on the floor.
func (l *VoucherList) Load(ctx context.Context) error {
	token := atomic.AddUint64(&l.seq, 1)

	snapshot := *l.filter
	resp, err := l.service.ListVouchers(ctx, &snapshot)

	if atomic.LoadUint64(&l.seq) != token {
		// A newer request was issued while this one was in flight
		return nil
	}

	if err != nil {
		l.loadErr = err
		return err
	}

	l.page = resp
	l.loadErr = nil
	return nil
}

// RequestDelete opens the confirmation dialog for the given voucher
func (l *VoucherList) RequestDelete(v *dto.VoucherResponse) {
	l.pendingDelete = v
}

// PendingDelete returns the confirmation target, nil when no dialog is open
func (l *VoucherList) PendingDelete() *dto.VoucherResponse {
	return l.pendingDelete
}

// CancelDelete closes the confirmation dialog without acting
func (l *VoucherList) CancelDelete() {
	l.pendingDelete = nil
}

// ConfirmDelete dispatches the soft delete. On success the dialog closes
// and the next Load observes fresh data through cache invalidation; the
// row is never removed optimistically. On failure the dialog stays open.
func (l *VoucherList) ConfirmDelete(ctx context.Context) error {
	if l.pendingDelete == nil {
		return nil
	}

	if err := l.service.DeleteVoucher(ctx, l.pendingDelete.ID); err != nil {
		return err
	}

	l.pendingDelete = nil
	return nil
}
