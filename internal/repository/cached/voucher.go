// Package cached wraps a voucher.Repository with the query cache: results
// are served for the configured staleness window, concurrent callers for
// the same key share one in-flight fetch, failed fetches get one retry,
// and every successful mutation invalidates the list namespace.
package cached

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/promokit/voucheradmin/internal/cache"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/domain/voucher"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/types"
)

// fetchRetries caps the retry budget for reads. Mutations are never
// retried here.
const fetchRetries = 1

type voucherRepository struct {
	repo   voucher.Repository
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *logger.Logger
}

func NewVoucherRepository(repo voucher.Repository, c cache.Cache, cfg *config.Configuration, logger *logger.Logger) voucher.Repository {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	return &voucherRepository{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *voucherRepository) List(ctx context.Context, filter *types.VoucherFilter) (*types.Page[voucher.Voucher], error) {
	if filter == nil {
		filter = types.NewDefaultVoucherFilter()
	}
	key := cache.GenerateKey(cache.PrefixVoucherList, filter.CacheParams()...)

	span := cache.StartCacheSpan(ctx, "voucher", "list", map[string]interface{}{"key": key})
	defer cache.FinishSpan(span)

	if cached, found := r.cache.Get(ctx, key); found {
		if page, ok := cached.(*types.Page[voucher.Voucher]); ok {
			cache.SetSpanSuccess(span)
			return page, nil
		}
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		page, err := r.fetchPage(ctx, filter)
		if err != nil {
			return nil, err
		}
		r.cache.Set(ctx, key, page, r.ttl)
		return page, nil
	})
	if err != nil {
		cache.SetSpanError(span, err)
		return nil, err
	}

	return result.(*types.Page[voucher.Voucher]), nil
}

func (r *voucherRepository) Get(ctx context.Context, id int64) (*voucher.Voucher, error) {
	key := cache.GenerateKey(cache.PrefixVoucherDetail, id)
	return r.cachedVoucher(ctx, key, func() (*voucher.Voucher, error) {
		return r.repo.Get(ctx, id)
	})
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	key := cache.GenerateKey(cache.PrefixVoucherCode, code)
	return r.cachedVoucher(ctx, key, func() (*voucher.Voucher, error) {
		return r.repo.GetByCode(ctx, code)
	})
}

func (r *voucherRepository) Create(ctx context.Context, v *voucher.Voucher) (*voucher.Voucher, error) {
	created, err := r.repo.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	r.invalidateLists(ctx)
	return created, nil
}

func (r *voucherRepository) Update(ctx context.Context, id int64, input *voucher.UpdateInput) (*voucher.Voucher, error) {
	updated, err := r.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	r.invalidateLists(ctx)
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherDetail, id))
	if updated != nil {
		r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherCode, updated.Code))
	}
	return updated, nil
}

func (r *voucherRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidateLists(ctx)
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherDetail, id))
	// The code is unknown without a body, drop the whole namespace
	r.cache.DeleteByPrefix(ctx, cache.PrefixVoucherCode)
	return nil
}

func (r *voucherRepository) Restore(ctx context.Context, id int64) error {
	if err := r.repo.Restore(ctx, id); err != nil {
		return err
	}
	r.invalidateLists(ctx)
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherDetail, id))
	r.cache.DeleteByPrefix(ctx, cache.PrefixVoucherCode)
	return nil
}

func (r *voucherRepository) Use(ctx context.Context, id int64) (*voucher.Voucher, error) {
	used, err := r.repo.Use(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidateLists(ctx)
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherDetail, id))
	if used != nil {
		r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixVoucherCode, used.Code))
	}
	return used, nil
}

func (r *voucherRepository) cachedVoucher(ctx context.Context, key string, fetch func() (*voucher.Voucher, error)) (*voucher.Voucher, error) {
	span := cache.StartCacheSpan(ctx, "voucher", "get", map[string]interface{}{"key": key})
	defer cache.FinishSpan(span)

	if cached, found := r.cache.Get(ctx, key); found {
		if v, ok := cached.(*voucher.Voucher); ok {
			cache.SetSpanSuccess(span)
			return v, nil
		}
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		v, err := r.withRetry(ctx, func() (interface{}, error) {
			return fetch()
		})
		if err != nil {
			return nil, err
		}
		r.cache.Set(ctx, key, v, r.ttl)
		return v, nil
	})
	if err != nil {
		cache.SetSpanError(span, err)
		return nil, err
	}

	return result.(*voucher.Voucher), nil
}

func (r *voucherRepository) fetchPage(ctx context.Context, filter *types.VoucherFilter) (*types.Page[voucher.Voucher], error) {
	result, err := r.withRetry(ctx, func() (interface{}, error) {
		return r.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return result.(*types.Page[voucher.Voucher]), nil
}

// withRetry runs a read with a single retry before surfacing the failure
func (r *voucherRepository) withRetry(ctx context.Context, op func() (interface{}, error)) (interface{}, error) {
	var result interface{}

	attempt := 0
	err := backoff.Retry(func() error {
		value, err := op()
		if err != nil {
			attempt++
			if attempt <= fetchRetries {
				r.logger.Warnw("retrying voucher fetch", "attempt", attempt, "error", err)
			}
			return err
		}
		result = value
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries), ctx))

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *voucherRepository) invalidateLists(ctx context.Context) {
	r.cache.DeleteByPrefix(ctx, cache.PrefixVoucherList)
}
