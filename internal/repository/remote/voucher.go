// Package remote implements voucher.Repository against the voucher
// backend's REST API. It is a thin typed pass-through: no business logic,
// no derivation, errors surface verbatim from the HTTP layer.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/shopspring/decimal"

	"github.com/promokit/voucheradmin/internal/domain/voucher"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/httpclient"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/types"
)

const voucherBasePath = "/v1/vouchers"

type voucherRepository struct {
	client  httpclient.Client
	baseURL string
	logger  *logger.Logger
}

func NewVoucherRepository(client httpclient.Client, baseURL string, logger *logger.Logger) voucher.Repository {
	return &voucherRepository{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// createPayload is the exact create wire shape; server-owned fields are
// never sent.
type createPayload struct {
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
	Tags           []string            `json:"tags,omitempty"`
	Status         types.VoucherStatus `json:"status,omitempty"`
}

func (r *voucherRepository) List(ctx context.Context, filter *types.VoucherFilter) (*types.Page[voucher.Voucher], error) {
	if filter == nil {
		filter = types.NewDefaultVoucherFilter()
	}

	values, err := query.Values(filter)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not encode the list query").
			Mark(ierr.ErrSystem)
	}

	var page types.Page[voucher.Voucher]
	if err := r.do(ctx, http.MethodGet, voucherBasePath+"?"+values.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *voucherRepository) Get(ctx context.Context, id int64) (*voucher.Voucher, error) {
	var v voucher.Voucher
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", voucherBasePath, id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	var v voucher.Voucher
	path := fmt.Sprintf("%s/code/%s", voucherBasePath, url.PathEscape(code))
	if err := r.do(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) Create(ctx context.Context, v *voucher.Voucher) (*voucher.Voucher, error) {
	payload := createPayload{
		Code:           v.Code,
		Title:          v.Title,
		Description:    v.Description,
		Platform:       v.Platform,
		DiscountType:   v.DiscountType,
		DiscountValue:  v.DiscountValue,
		MinOrderAmount: v.MinOrderAmount,
		StartAt:        v.StartAt,
		EndAt:          v.EndAt,
		UsageLimit:     v.UsageLimit,
		Tags:           v.Tags,
		Status:         v.Status,
	}

	var created voucher.Voucher
	if err := r.do(ctx, http.MethodPost, voucherBasePath, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *voucherRepository) Update(ctx context.Context, id int64, input *voucher.UpdateInput) (*voucher.Voucher, error) {
	var updated voucher.Voucher
	if err := r.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", voucherBasePath, id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *voucherRepository) Delete(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", voucherBasePath, id), nil, nil)
}

func (r *voucherRepository) Restore(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/restore", voucherBasePath, id), nil, nil)
}

func (r *voucherRepository) Use(ctx context.Context, id int64) (*voucher.Voucher, error) {
	var used voucher.Voucher
	if err := r.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/use", voucherBasePath, id), nil, &used); err != nil {
		return nil, err
	}
	return &used, nil
}

// do sends one request and decodes the response into out when non-nil
func (r *voucherRepository) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	req := &httpclient.Request{
		Method: method,
		URL:    r.baseURL + path,
	}

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Could not encode the request payload").
				Mark(ierr.ErrSystem)
		}
		req.Body = encoded
	}

	resp, err := r.client.Send(ctx, req)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHint("The voucher service returned an unexpected payload").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}
