package repository

import (
	"github.com/promokit/voucheradmin/internal/cache"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/domain/voucher"
	"github.com/promokit/voucheradmin/internal/httpclient"
	"github.com/promokit/voucheradmin/internal/logger"
	cachedRepo "github.com/promokit/voucheradmin/internal/repository/cached"
	remoteRepo "github.com/promokit/voucheradmin/internal/repository/remote"
)

// NewVoucherRepository assembles the standard stack: the REST-backed
// repository wrapped by the query cache.
func NewVoucherRepository(client httpclient.Client, cfg *config.Configuration, c cache.Cache, logger *logger.Logger) voucher.Repository {
	remote := remoteRepo.NewVoucherRepository(client, cfg.API.BaseURL, logger)
	return cachedRepo.NewVoucherRepository(remote, c, cfg, logger)
}
