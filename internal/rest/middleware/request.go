package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/subcycle/subcycle/internal/types"
)

// RequestIDMiddleware tags every request with an id, propagated through the
// request context and echoed in the response headers.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
