package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promokit/voucheradmin/internal/domain/voucher"
	ierr "github.com/promokit/voucheradmin/internal/errors"
	"github.com/promokit/voucheradmin/internal/types"
)

// FakeBackend is an httptest server speaking the voucher backend's wire
// contract, backed by an InMemoryVoucherStore. Tests can inspect the
// headers of the last request and inject failures.
type FakeBackend struct {
	Server *httptest.Server
	Store  *InMemoryVoucherStore

	mu          sync.Mutex
	lastHeaders http.Header
	failures    int
	failStatus  int
	reject401   bool
}

// NewFakeBackend starts the fake server. Callers own shutdown via Close.
func NewFakeBackend() *FakeBackend {
	gin.SetMode(gin.TestMode)

	b := &FakeBackend{
		Store: NewInMemoryVoucherStore(),
	}

	router := gin.New()
	router.Use(b.capture)

	vouchers := router.Group("/v1/vouchers")
	{
		vouchers.GET("", b.list)
		vouchers.POST("", b.create)
		vouchers.GET("/code/:code", b.getByCode)
		vouchers.GET("/:id", b.get)
		vouchers.PUT("/:id", b.update)
		vouchers.DELETE("/:id", b.remove)
		vouchers.POST("/:id/restore", b.restore)
		vouchers.POST("/:id/use", b.use)
	}

	b.Server = httptest.NewServer(router)
	return b
}

func (b *FakeBackend) Close() {
	b.Server.Close()
}

// URL returns the base URL clients should be pointed at
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// LastHeaders returns the headers of the most recent request
func (b *FakeBackend) LastHeaders() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastHeaders
}

// FailNext makes the next n requests answer with the given status and a
// structured error body before normal handling resumes.
func (b *FakeBackend) FailNext(n, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = n
	b.failStatus = status
}

// RejectUnauthenticated makes every request without an Authorization
// header fail with 401.
func (b *FakeBackend) RejectUnauthenticated() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reject401 = true
}

func (b *FakeBackend) capture(c *gin.Context) {
	b.mu.Lock()
	b.lastHeaders = c.Request.Header.Clone()

	if b.failures > 0 {
		status := b.failStatus
		b.failures--
		b.mu.Unlock()
		b.writeError(c, status, "injected failure")
		return
	}

	if b.reject401 && c.GetHeader("Authorization") == "" {
		b.mu.Unlock()
		b.writeError(c, http.StatusUnauthorized, "missing or invalid credentials")
		return
	}
	b.mu.Unlock()

	c.Next()
}

func (b *FakeBackend) writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ierr.ErrorResponse{
		Code:      http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
		TraceID:   uuid.New().String(),
	})
}

func (b *FakeBackend) list(c *gin.Context) {
	var filter types.VoucherFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		b.writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	filter.WithDefaults()

	page, err := b.Store.List(c.Request.Context(), &filter)
	if err != nil {
		b.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}

func (b *FakeBackend) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		b.writeError(c, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := b.Store.Get(c.Request.Context(), id)
	if err != nil {
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (b *FakeBackend) getByCode(c *gin.Context) {
	v, err := b.Store.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (b *FakeBackend) create(c *gin.Context) {
	var v voucher.Voucher
	if err := c.ShouldBindJSON(&v); err != nil {
		b.writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := b.Store.Create(c.Request.Context(), &v)
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			b.writeError(c, http.StatusConflict, "voucher code already exists")
			return
		}
		b.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (b *FakeBackend) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		b.writeError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var input voucher.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		b.writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := b.Store.Update(c.Request.Context(), id, &input)
	if err != nil {
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (b *FakeBackend) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		b.writeError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := b.Store.Delete(c.Request.Context(), id); err != nil {
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (b *FakeBackend) restore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		b.writeError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := b.Store.Restore(c.Request.Context(), id); err != nil {
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (b *FakeBackend) use(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		b.writeError(c, http.StatusBadRequest, "invalid id")
		return
	}

	used, err := b.Store.Use(c.Request.Context(), id)
	if err != nil {
		if ierr.IsInvalidOperation(err) {
			b.writeError(c, http.StatusBadRequest, "usage limit reached")
			return
		}
		b.writeError(c, http.StatusNotFound, "voucher not found")
		return
	}
	c.JSON(http.StatusOK, used)
}
