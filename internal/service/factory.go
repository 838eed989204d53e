package service

import (
	"time"

	"github.com/subcycle/subcycle/internal/config"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/domain/plan"
	"github.com/subcycle/subcycle/internal/gateway"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/notification"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	CustomerRepo customer.Repository
	PlanRepo     plan.Repository
	InvoiceRepo  invoice.Repository
	PaymentRepo  payment.Repository
	RetryRepo    payment.RetryRepository

	// Collaborators
	Sink    notification.Sink
	Decider gateway.Decider

	// Now overrides the clock, tests pin it for exact date arithmetic
	Now func() time.Time
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	customerRepo customer.Repository,
	planRepo plan.Repository,
	invoiceRepo invoice.Repository,
	paymentRepo payment.Repository,
	retryRepo payment.RetryRepository,
	sink notification.Sink,
	decider gateway.Decider,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		CustomerRepo: customerRepo,
		PlanRepo:     planRepo,
		InvoiceRepo:  invoiceRepo,
		PaymentRepo:  paymentRepo,
		RetryRepo:    retryRepo,
		Sink:         sink,
		Decider:      decider,
	}
}

func (p ServiceParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}
