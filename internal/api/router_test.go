package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/promokit/voucheradmin/internal/api/dto"
	v1 "github.com/promokit/voucheradmin/internal/api/v1"
	"github.com/promokit/voucheradmin/internal/config"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/service"
	"github.com/promokit/voucheradmin/internal/testutil"
	"github.com/promokit/voucheradmin/internal/types"
	"github.com/promokit/voucheradmin/internal/validator"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	s.BaseServiceTestSuite.SetupSuite()
	gin.SetMode(gin.TestMode)
	validator.NewValidator()
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	svc := service.NewVoucherService(s.GetStore(), s.GetLogger())
	handler := v1.NewVoucherHandler(svc, s.GetLogger())

	cfg := config.GetDefaultConfig()
	s.router = NewRouter(Handlers{Voucher: handler}, cfg)
}

func (s *RouterSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) createBody(code string) map[string]interface{} {
	now := s.GetNow()
	return map[string]interface{}{
		"code":           code,
		"title":          "10% off storewide",
		"platform":       "SHOPEE",
		"discount_type":  "PERCENT",
		"discount_value": "10",
		"start_at":       now.Add(-time.Hour).Format(time.RFC3339),
		"end_at":         now.Add(24 * time.Hour).Format(time.RFC3339),
		"status":         "ACTIVE",
	}
}

func (s *RouterSuite) decodeVoucher(w *httptest.ResponseRecorder) dto.VoucherResponse {
	var resp dto.VoucherResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *RouterSuite) decodeError(w *httptest.ResponseRecorder) ierr.ErrorResponse {
	var resp ierr.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *RouterSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestRootRedirect() {
	w := s.request(http.MethodGet, "/", nil)
	s.Equal(http.StatusTemporaryRedirect, w.Code)
	s.Equal("/admin/v1/vouchers", w.Header().Get("Location"))
}

func (s *RouterSuite) TestCreateVoucher() {
	w := s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	created := s.decodeVoucher(w)
	s.NotZero(created.ID)
	s.Equal("SUMMER10", created.Code)
	s.True(created.IsActive)
}

func (s *RouterSuite) TestCreateVoucherValidationError() {
	body := s.createBody("SUMMER10")
	body["title"] = ""

	w := s.request(http.MethodPost, "/admin/v1/vouchers", body)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	errResp := s.decodeError(w)
	s.Equal(ierr.ErrCodeValidation, errResp.Code)
	s.NotEmpty(errResp.Message)
	s.Equal("/admin/v1/vouchers", errResp.Path)
	s.NotEmpty(errResp.TraceID)
	s.False(errResp.Timestamp.IsZero())
}

func (s *RouterSuite) TestCreateVoucherConflict() {
	w := s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))
	s.Require().Equal(http.StatusConflict, w.Code)
	s.Equal(ierr.ErrCodeAlreadyExists, s.decodeError(w).Code)
}

func (s *RouterSuite) TestGetVoucher() {
	w := s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))
	created := s.decodeVoucher(w)

	w = s.request(http.MethodGet, "/admin/v1/vouchers/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(created.ID, s.decodeVoucher(w).ID)
}

func (s *RouterSuite) TestGetVoucherBadID() {
	w := s.request(http.MethodGet, "/admin/v1/vouchers/abc", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.decodeError(w).Code)
}

func (s *RouterSuite) TestGetVoucherNotFound() {
	w := s.request(http.MethodGet, "/admin/v1/vouchers/9999", nil)
	s.Require().Equal(http.StatusNotFound, w.Code)
	s.Equal(ierr.ErrCodeNotFound, s.decodeError(w).Code)
}

func (s *RouterSuite) TestGetVoucherByCode() {
	s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))

	w := s.request(http.MethodGet, "/admin/v1/vouchers/code/SUMMER10", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("SUMMER10", s.decodeVoucher(w).Code)
}

func (s *RouterSuite) TestListVouchers() {
	s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SHOPEE10"))

	lazada := s.createBody("LAZADA20")
	lazada["platform"] = "LAZADA"
	s.request(http.MethodPost, "/admin/v1/vouchers", lazada)

	w := s.request(http.MethodGet, "/admin/v1/vouchers", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var page types.Page[dto.VoucherResponse]
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Equal(2, page.TotalElements)
	s.True(page.First)
	s.True(page.Last)

	w = s.request(http.MethodGet, "/admin/v1/vouchers?platform=LAZADA", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	s.Equal(1, page.TotalElements)
	s.Equal("LAZADA20", page.Content[0].Code)
}

func (s *RouterSuite) TestListVouchersBadFilter() {
	w := s.request(http.MethodGet, "/admin/v1/vouchers?size=5000", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.decodeError(w).Code)
}

func (s *RouterSuite) TestUpdateVoucher() {
	s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))

	w := s.request(http.MethodPut, "/admin/v1/vouchers/1", map[string]interface{}{
		"title": "15% off storewide",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	updated := s.decodeVoucher(w)
	s.Equal("15% off storewide", updated.Title)
	s.Equal("SUMMER10", updated.Code)
}

func (s *RouterSuite) TestDeleteAndRestore() {
	s.request(http.MethodPost, "/admin/v1/vouchers", s.createBody("SUMMER10"))

	w := s.request(http.MethodDelete, "/admin/v1/vouchers/1", nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, "/admin/v1/vouchers/1", nil)
	s.Require().Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/admin/v1/vouchers/1/restore", nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, "/admin/v1/vouchers/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestUseVoucher() {
	body := s.createBody("LIMITED1")
	body["usage_limit"] = 1
	s.request(http.MethodPost, "/admin/v1/vouchers", body)

	w := s.request(http.MethodPost, "/admin/v1/vouchers/1/use", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(1, s.decodeVoucher(w).UsedCount)

	w = s.request(http.MethodPost, "/admin/v1/vouchers/1/use", nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeInvalidOperation, s.decodeError(w).Code)
}

func (s *RouterSuite) TestRequestIDPropagates() {
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/vouchers/9999", nil)
	req.Header.Set(types.HeaderRequestID, "req-42")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("req-42", s.decodeError(w).TraceID)
}
