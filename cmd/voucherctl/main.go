package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/promokit/voucheradmin/internal/cache"
	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/credentials"
	"github.com/promokit/voucheradmin/internal/httpclient"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/repository"
	"github.com/promokit/voucheradmin/internal/service"
)

var rootCmd = &cobra.Command{
	Use:          "voucherctl",
	Short:        "Manage promotional vouchers against the voucher service",
	SilenceUsage: true,
}

func init() {
	time.Local = time.UTC

	rootCmd.AddCommand(
		listCmd,
		getCmd,
		createCmd,
		updateCmd,
		deleteCmd,
		restoreCmd,
		useCmd,
		authCmd,
	)
}

// app bundles the assembled stack for command handlers
type app struct {
	cfg     *config.Configuration
	logger  *logger.Logger
	creds   credentials.Provider
	service service.VoucherService
}

func newApp() (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	creds, err := credentials.NewFileStore(cfg.Credentials.Path)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewAuthenticatedClient(
		httpclient.NewDefaultClient(cfg.API.Timeout),
		creds,
		log,
	)

	repo := repository.NewVoucherRepository(client, cfg, cache.NewInMemoryCache(cfg), log)

	return &app{
		cfg:     cfg,
		logger:  log,
		creds:   creds,
		service: service.NewVoucherService(repo, log),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
