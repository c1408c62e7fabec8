package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promokit/voucheradmin/internal/api/dto"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/service"
	"github.com/promokit/voucheradmin/internal/types"
)

type VoucherHandler struct {
	service service.VoucherService
	logger  *logger.Logger
}

func NewVoucherHandler(service service.VoucherService, logger *logger.Logger) *VoucherHandler {
	return &VoucherHandler{
		service: service,
		logger:  logger,
	}
}

// ListVouchers handles GET /admin/v1/vouchers
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	var filter types.VoucherFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListVouchers(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetVoucher handles GET /admin/v1/vouchers/:id
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, ok := h.voucherID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetVoucher(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetVoucherByCode handles GET /admin/v1/vouchers/code/:code
func (h *VoucherHandler) GetVoucherByCode(c *gin.Context) {
	resp, err := h.service.GetVoucherByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateVoucher handles POST /admin/v1/vouchers
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateVoucher(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateVoucher handles PUT /admin/v1/vouchers/:id
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	id, ok := h.voucherID(c)
	if !ok {
		return
	}

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateVoucher(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteVoucher handles DELETE /admin/v1/vouchers/:id (soft delete)
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	id, ok := h.voucherID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVoucher(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreVoucher handles POST /admin/v1/vouchers/:id/restore
func (h *VoucherHandler) RestoreVoucher(c *gin.Context) {
	id, ok := h.voucherID(c)
	if !ok {
		return
	}

	if err := h.service.RestoreVoucher(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UseVoucher handles POST /admin/v1/vouchers/:id/use
func (h *VoucherHandler) UseVoucher(c *gin.Context) {
	id, ok := h.voucherID(c)
	if !ok {
		return
	}

	resp, err := h.service.UseVoucher(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VoucherHandler) voucherID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Voucher id must be a number").
			Mark(ierr.ErrValidation))
		return 0, false
	}
	return id, true
}
