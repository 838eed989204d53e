package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/service"
)

// PaymentHandler handles payment related cron jobs
type PaymentHandler struct {
	sweepService service.RetrySweepService
	logger       *logger.Logger
}

func NewPaymentHandler(sweepService service.RetrySweepService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		sweepService: sweepService,
		logger:       logger,
	}
}

// RetryFailedPayments reattempts settlement for every invoice with a live
// retry marker. The scheduler hits this on a cron, it can also be invoked
// manually to drain the retry queue.
func (h *PaymentHandler) RetryFailedPayments(c *gin.Context) {
	h.logger.Infow("starting payment retry cron job", "time", time.Now().UTC().Format(time.RFC3339))

	if err := h.sweepService.ProcessDueRetries(c.Request.Context()); err != nil {
		h.logger.Errorw("payment retry cron job failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
