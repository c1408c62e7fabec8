package cached

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/promokit/voucheradmin/internal/cache"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/domain/voucher"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/testutil"
	"github.com/promokit/voucheradmin/internal/types"
)

// flakyRepository fails the first failures calls of each read before
// delegating, to exercise the retry path.
type flakyRepository struct {
	voucher.Repository
	mu       sync.Mutex
	failures int
}

func (f *flakyRepository) failOnce() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return ierr.NewError("transient failure").Mark(ierr.ErrNetwork)
	}
	return nil
}

func (f *flakyRepository) List(ctx context.Context, filter *types.VoucherFilter) (*types.Page[voucher.Voucher], error) {
	if err := f.failOnce(); err != nil {
		return nil, err
	}
	return f.Repository.List(ctx, filter)
}

func (f *flakyRepository) Get(ctx context.Context, id int64) (*voucher.Voucher, error) {
	if err := f.failOnce(); err != nil {
		return nil, err
	}
	return f.Repository.Get(ctx, id)
}

type CachedRepositorySuite struct {
	suite.Suite
	ctx   context.Context
	store *testutil.InMemoryVoucherStore
	flaky *flakyRepository
	repo  voucher.Repository
}

func TestCachedRepository(t *testing.T) {
	suite.Run(t, new(CachedRepositorySuite))
}

func (s *CachedRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewInMemoryVoucherStore()
	s.flaky = &flakyRepository{Repository: s.store}

	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = 5 * time.Minute

	s.repo = NewVoucherRepository(s.flaky, cache.NewInMemoryCache(cfg), cfg, logger.NewNopLogger())
}

func (s *CachedRepositorySuite) seed(code string) *voucher.Voucher {
	now := time.Now().UTC()
	created, err := s.store.Create(s.ctx, &voucher.Voucher{
		Code:          code,
		Title:         "Seeded voucher",
		Platform:      types.PlatformShopee,
		DiscountType:  types.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(5),
		StartAt:       now.Add(-time.Hour),
		EndAt:         now.Add(time.Hour),
		Status:        types.VoucherStatusActive,
	})
	s.Require().NoError(err)
	s.store.Calls["create"] = 0
	return created
}

func (s *CachedRepositorySuite) TestListServedFromCache() {
	_, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(1, s.store.CallCount("list"))

	// same filter inside the staleness window hits the cache
	_, err = s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(1, s.store.CallCount("list"))

	// a different filter is a different key
	filter := types.NewDefaultVoucherFilter()
	filter.Q = lo.ToPtr("summer")
	_, err = s.repo.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal(2, s.store.CallCount("list"))
}

func (s *CachedRepositorySuite) TestGetServedFromCache() {
	v := s.seed("SUMMER10")

	got, err := s.repo.Get(s.ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.ID, got.ID)
	s.Equal(1, s.store.CallCount("get"))

	_, err = s.repo.Get(s.ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(1, s.store.CallCount("get"))
}

func (s *CachedRepositorySuite) TestReadRetriesOnce() {
	s.seed("SUMMER10")
	s.flaky.failures = 1

	_, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err, "one transient failure must be absorbed")
	s.Equal(1, s.store.CallCount("list"))
}

func (s *CachedRepositorySuite) TestReadFailsAfterRetryBudget() {
	s.seed("SUMMER10")
	s.flaky.failures = 2

	_, err := s.repo.List(s.ctx, nil)
	s.Require().Error(err)
	s.True(ierr.IsNetwork(err))
	s.Zero(s.store.CallCount("list"))
}

func (s *CachedRepositorySuite) TestCreateInvalidatesLists() {
	_, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(1, s.store.CallCount("list"))

	now := time.Now().UTC()
	_, err = s.repo.Create(s.ctx, &voucher.Voucher{
		Code:         "NEW1",
		Title:        "Fresh voucher",
		Platform:     types.PlatformTiki,
		DiscountType: types.DiscountTypeFixed,
		StartAt:      now,
		EndAt:        now.Add(time.Hour),
	})
	s.Require().NoError(err)

	// the next list must refetch and see the new record
	page, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(2, s.store.CallCount("list"))
	s.Equal(1, page.TotalElements)
}

func (s *CachedRepositorySuite) TestUpdateInvalidatesDetailAndCode() {
	v := s.seed("SUMMER10")

	_, err := s.repo.Get(s.ctx, v.ID)
	s.Require().NoError(err)
	_, err = s.repo.GetByCode(s.ctx, v.Code)
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, v.ID, &voucher.UpdateInput{
		Title: lo.ToPtr("Updated title"),
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, v.ID)
	s.Require().NoError(err)
	s.Equal("Updated title", got.Title)
	s.Equal(2, s.store.CallCount("get"))

	byCode, err := s.repo.GetByCode(s.ctx, v.Code)
	s.Require().NoError(err)
	s.Equal("Updated title", byCode.Title)
	s.Equal(2, s.store.CallCount("get_by_code"))
}

func (s *CachedRepositorySuite) TestDeleteInvalidates() {
	v := s.seed("SUMMER10")

	_, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	_, err = s.repo.Get(s.ctx, v.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(s.ctx, v.ID))

	page, err := s.repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(0, page.TotalElements)
	s.Equal(2, s.store.CallCount("list"))
}

func (s *CachedRepositorySuite) TestMutationErrorsPropagate() {
	_, err := s.repo.Use(s.ctx, 12345)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CachedRepositorySuite) TestConcurrentListsShareOneFetch() {
	s.seed("SUMMER10")

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.repo.List(s.ctx, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
	// singleflight collapses the burst; the store may see at most a
	// couple of fetches if a flight completes between arrivals
	s.LessOrEqual(s.store.CallCount("list"), 2)
}
