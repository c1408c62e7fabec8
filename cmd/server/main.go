package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/promokit/voucheradmin/internal/api"
	v1 "github.com/promokit/voucheradmin/internal/api/v1"
	"github.com/promokit/voucheradmin/internal/cache"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/credentials"
	"github.com/promokit/voucheradmin/internal/domain/voucher"
	"github.com/promokit/voucheradmin/internal/httpclient"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/repository"
	"github.com/promokit/voucheradmin/internal/sentry"
	"github.com/promokit/voucheradmin/internal/service"
	"github.com/promokit/voucheradmin/internal/validator"
)

func init() {
	// Keep every timestamp the backend hands us in UTC
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			provideLogger,
			sentry.NewSentryService,
			cache.NewInMemoryCache,
			provideCredentials,
			provideHTTPClient,
			provideVoucherRepository,
			service.NewVoucherService,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app.Run()
}

func provideLogger(cfg *config.Configuration) (*logger.Logger, error) {
	return logger.NewLogger(cfg.Logging.Level)
}

func provideCredentials(cfg *config.Configuration, log *logger.Logger) (credentials.Provider, error) {
	if cfg.Credentials.Path == "" {
		log.Warn("no credentials path configured, requests go out unauthenticated")
		return credentials.NewMemoryStore(), nil
	}
	return credentials.NewFileStore(cfg.Credentials.Path)
}

func provideHTTPClient(cfg *config.Configuration, creds credentials.Provider, log *logger.Logger) httpclient.Client {
	return httpclient.NewAuthenticatedClient(
		httpclient.NewDefaultClient(cfg.API.Timeout),
		creds,
		log,
	)
}

func provideVoucherRepository(client httpclient.Client, cfg *config.Configuration, c cache.Cache, log *logger.Logger) voucher.Repository {
	return repository.NewVoucherRepository(client, cfg, c, log)
}

func provideHandlers(voucherService service.VoucherService, log *logger.Logger) api.Handlers {
	return api.Handlers{
		Voucher: v1.NewVoucherHandler(voucherService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(lc fx.Lifecycle, cfg *config.Configuration, r *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting admin gateway",
				"address", cfg.Server.Address,
				"backend", cfg.API.BaseURL,
			)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
