package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/promokit/voucheradmin/internal/api/v1"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/rest/middleware"
)

type Handlers struct {
	Voucher *v1.VoucherHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The SPA's root redirect, kept for parity with the original routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/admin/v1/vouchers")
	})

	admin := router.Group("/admin/v1")
	registerVoucherRoutes(admin, handlers)

	return router
}

func registerVoucherRoutes(router *gin.RouterGroup, handlers Handlers) {
	vouchers := router.Group("/vouchers")
	{
		vouchers.GET("", handlers.Voucher.ListVouchers)
		vouchers.POST("", handlers.Voucher.CreateVoucher)
		vouchers.GET("/code/:code", handlers.Voucher.GetVoucherByCode)
		vouchers.GET("/:id", handlers.Voucher.GetVoucher)
		vouchers.PUT("/:id", handlers.Voucher.UpdateVoucher)
		vouchers.DELETE("/:id", handlers.Voucher.DeleteVoucher)
		vouchers.POST("/:id/restore", handlers.Voucher.RestoreVoucher)
		vouchers.POST("/:id/use", handlers.Voucher.UseVoucher)
	}
}
