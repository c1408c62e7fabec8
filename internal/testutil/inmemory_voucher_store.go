package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promokit/voucheradmin/internal/domain/voucher"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/types"
)

// InMemoryVoucherStore implements voucher.Repository against a map,
// mimicking the backend's semantics: server-assigned ids, soft delete
// with restore, usage counting, derived is_active/is_expired flags and
// the paginated list envelope. Call counters are exposed so tests can
// assert how often the network would have been hit.
type InMemoryVoucherStore struct {
	mu       sync.Mutex
	vouchers map[int64]*voucher.Voucher
	deleted  map[int64]bool
	nextID   int64

	Calls map[string]int
}

func NewInMemoryVoucherStore() *InMemoryVoucherStore {
	return &InMemoryVoucherStore{
		vouchers: make(map[int64]*voucher.Voucher),
		deleted:  make(map[int64]bool),
		nextID:   1,
		Calls:    make(map[string]int),
	}
}

// Clear removes all vouchers and resets counters
func (s *InMemoryVoucherStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vouchers = make(map[int64]*voucher.Voucher)
	s.deleted = make(map[int64]bool)
	s.nextID = 1
	s.Calls = make(map[string]int)
}

// CallCount returns how many times the given operation ran
func (s *InMemoryVoucherStore) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[op]
}

// TotalCalls sums every operation
func (s *InMemoryVoucherStore) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.Calls {
		total += n
	}
	return total
}

func copyVoucher(v *voucher.Voucher) *voucher.Voucher {
	if v == nil {
		return nil
	}
	copied := *v
	if v.UsageLimit != nil {
		limit := *v.UsageLimit
		copied.UsageLimit = &limit
	}
	copied.Tags = append([]string(nil), v.Tags...)
	return &copied
}

func (s *InMemoryVoucherStore) derive(v *voucher.Voucher) {
	now := time.Now()
	v.IsExpired = now.After(v.EndAt)
	v.IsActive = v.Status == types.VoucherStatusActive &&
		!now.Before(v.StartAt) && !v.IsExpired
}

func (s *InMemoryVoucherStore) List(ctx context.Context, filter *types.VoucherFilter) (*types.Page[voucher.Voucher], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["list"]++

	if filter == nil {
		filter = types.NewDefaultVoucherFilter()
	}

	var matched []*voucher.Voucher
	for id, v := range s.vouchers {
		if s.deleted[id] {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.Platform != nil && v.Platform != *filter.Platform {
			continue
		}
		if filter.Q != nil && *filter.Q != "" {
			q := strings.ToLower(*filter.Q)
			if !strings.Contains(strings.ToLower(v.Title), q) &&
				!strings.Contains(strings.ToLower(v.Code), q) {
				continue
			}
		}
		if filter.ActiveNow != nil && *filter.ActiveNow && !v.IsActive {
			continue
		}
		matched = append(matched, v)
	}

	sort.Slice(matched, func(i, j int) bool {
		if strings.HasSuffix(filter.Sort, ",asc") {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := filter.Page * filter.Size
	if start > total {
		start = total
	}
	end := start + filter.Size
	if end > total {
		end = total
	}

	content := make([]voucher.Voucher, 0, end-start)
	for _, v := range matched[start:end] {
		content = append(content, *copyVoucher(v))
	}

	page := types.NewPage(content, filter.Page, filter.Size, total)
	return &page, nil
}

func (s *InMemoryVoucherStore) Get(ctx context.Context, id int64) (*voucher.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["get"]++

	v, ok := s.vouchers[id]
	if !ok || s.deleted[id] {
		return nil, ierr.NewError("voucher not found").
			WithHintf("No voucher with id %d", id).
			Mark(ierr.ErrNotFound)
	}
	return copyVoucher(v), nil
}

func (s *InMemoryVoucherStore) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["get_by_code"]++

	for id, v := range s.vouchers {
		if v.Code == code && !s.deleted[id] {
			return copyVoucher(v), nil
		}
	}
	return nil, ierr.NewError("voucher not found").
		WithHintf("No voucher with code %s", code).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryVoucherStore) Create(ctx context.Context, v *voucher.Voucher) (*voucher.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["create"]++

	for id, existing := range s.vouchers {
		if existing.Code == v.Code && !s.deleted[id] {
			return nil, ierr.NewError("voucher code already exists").
				WithHintf("A voucher with code %s already exists", v.Code).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	created := copyVoucher(v)
	created.ID = s.nextID
	s.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	created.UsedCount = 0
	if created.Status == "" {
		created.Status = types.VoucherStatusDraft
	}
	s.derive(created)

	s.vouchers[created.ID] = created
	return copyVoucher(created), nil
}

func (s *InMemoryVoucherStore) Update(ctx context.Context, id int64, input *voucher.UpdateInput) (*voucher.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["update"]++

	v, ok := s.vouchers[id]
	if !ok || s.deleted[id] {
		return nil, ierr.NewError("voucher not found").
			WithHintf("No voucher with id %d", id).
			Mark(ierr.ErrNotFound)
	}

	if input.Title != nil {
		v.Title = *input.Title
	}
	if input.Description != nil {
		v.Description = *input.Description
	}
	if input.Platform != nil {
		v.Platform = *input.Platform
	}
	if input.DiscountType != nil {
		v.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		v.DiscountValue = *input.DiscountValue
	}
	if input.MinOrderAmount != nil {
		v.MinOrderAmount = *input.MinOrderAmount
	}
	if input.StartAt != nil {
		v.StartAt = *input.StartAt
	}
	if input.EndAt != nil {
		v.EndAt = *input.EndAt
	}
	if input.UsageLimit != nil {
		v.UsageLimit = input.UsageLimit
	}
	if input.Tags != nil {
		v.Tags = *input.Tags
	}
	if input.Status != nil {
		v.Status = *input.Status
	}
	v.UpdatedAt = time.Now()
	s.derive(v)

	return copyVoucher(v), nil
}

func (s *InMemoryVoucherStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["delete"]++

	if _, ok := s.vouchers[id]; !ok || s.deleted[id] {
		return ierr.NewError("voucher not found").
			WithHintf("No voucher with id %d", id).
			Mark(ierr.ErrNotFound)
	}
	s.deleted[id] = true
	return nil
}

func (s *InMemoryVoucherStore) Restore(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["restore"]++

	if _, ok := s.vouchers[id]; !ok || !s.deleted[id] {
		return ierr.NewError("voucher is not deleted").
			WithHintf("No deleted voucher with id %d", id).
			Mark(ierr.ErrNotFound)
	}
	delete(s.deleted, id)
	return nil
}

func (s *InMemoryVoucherStore) Use(ctx context.Context, id int64) (*voucher.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["use"]++

	v, ok := s.vouchers[id]
	if !ok || s.deleted[id] {
		return nil, ierr.NewError("voucher not found").
			WithHintf("No voucher with id %d", id).
			Mark(ierr.ErrNotFound)
	}

	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return nil, ierr.NewError("usage limit reached").
			WithHintf("Voucher %s has no uses left", v.Code).
			Mark(ierr.ErrInvalidOperation)
	}

	v.UsedCount++
	v.UpdatedAt = time.Now()
	return copyVoucher(v), nil
}
