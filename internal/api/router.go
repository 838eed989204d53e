package api

import (
	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/api/cron"
	v1 "github.com/subcycle/subcycle/internal/api/v1"
	"github.com/subcycle/subcycle/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Plan     *v1.PlanHandler
	Customer *v1.CustomerHandler
	Invoice  *v1.InvoiceHandler
	Payment  *v1.PaymentHandler

	CronPayment *cron.PaymentHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	router.GET("/health", handlers.Health.Health)

	plans := router.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.GET("", handlers.Plan.ListPlans)
		plans.GET("/:id", handlers.Plan.GetPlan)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.POST("/:id/subscription", handlers.Customer.AssignSubscription)
		customers.POST("/:id/subscription/cancel", handlers.Customer.CancelSubscription)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.GenerateInvoice)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("/change-plan", handlers.Invoice.ChangePlan)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.ProcessPayment)
		payments.GET("/:id", handlers.Payment.GetPayment)
	}

	// cron routes, hit by the in-process scheduler and available for manual
	// invocation
	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/payments/retry", handlers.CronPayment.RetryFailedPayments)
	}
}
