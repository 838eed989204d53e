package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ierr "github.com/subcycle/subcycle/internal/errors"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	return r
}

func TestErrorHandlerNotFound(t *testing.T) {
	r := newTestRouter()
	r.GET("/boom", func(c *gin.Context) {
		c.Error(ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": "inv_1"}).
			Mark(ierr.ErrNotFound))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invoice not found", resp.Error.Display)
	assert.Equal(t, "inv_1", resp.Error.Details["invoice_id"])
}

func TestErrorHandlerPaymentFailed(t *testing.T) {
	r := newTestRouter()
	r.POST("/pay", func(c *gin.Context) {
		c.Error(ierr.NewError("payment processing failed").
			WithHint("Payment processing failed. Retry scheduled.").
			Mark(ierr.ErrPaymentFailed))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pay", nil))

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Payment processing failed. Retry scheduled.", resp.Error.Display)
}

func TestErrorHandlerNoError(t *testing.T) {
	r := newTestRouter()
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
