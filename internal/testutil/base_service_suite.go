package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/subcycle/subcycle/internal/config"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/domain/plan"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/repository"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CustomerRepo customer.Repository
	PlanRepo     plan.Repository
	InvoiceRepo  invoice.Repository
	PaymentRepo  payment.Repository
	RetryRepo    payment.RetryRepository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	store  *CountingStore
	sink   *RecorderSink
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.setupStores()
	s.sink = NewRecorderSink()
	// a pinned clock keeps due date and proration arithmetic exact
	s.now = time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.store = NewCountingStore(kv.NewInMemoryStore())
	s.stores = Stores{
		CustomerRepo: repository.NewCustomerRepository(s.store, s.logger),
		PlanRepo:     repository.NewPlanRepository(s.store, s.logger),
		InvoiceRepo:  repository.NewInvoiceRepository(s.store, s.logger),
		PaymentRepo:  repository.NewPaymentRepository(s.store, s.logger),
		RetryRepo:    repository.NewRetryRepository(s.store, s.config.Retry.MarkerTTL, s.logger),
	}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetStore returns the recording kv store backing all repositories
func (s *BaseServiceTestSuite) GetStore() *CountingStore {
	return s.store
}

// GetSink returns the recording notification sink
func (s *BaseServiceTestSuite) GetSink() *RecorderSink {
	return s.sink
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the pinned test clock
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
