package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/promokit/voucheradmin/internal/config"
	"github.com/promokit/voucheradmin/internal/logger"
	"github.com/promokit/voucheradmin/internal/types"
	"github.com/promokit/voucheradmin/internal/validator"
)

// BaseServiceTestSuite provides common functionality for service and
// controller test suites: a test context, config, logger and a fresh
// in-memory voucher store per test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *InMemoryVoucherStore
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.store = NewInMemoryVoucherStore()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.store.Clear()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, uuid.New().String())
	s.ctx = context.WithValue(s.ctx, types.CtxUsername, "test-admin")
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStore returns the voucher store backing the current test
func (s *BaseServiceTestSuite) GetStore() *InMemoryVoucherStore {
	return s.store
}

// GetLogger returns the suite logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the suite configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the timestamp captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
