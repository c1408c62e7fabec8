package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promokit/voucheradmin/internal/types"
)

// RequestIDMiddleware tags every request with an id, generating one when
// the caller did not supply X-Request-ID. The username header, when
// present, travels along on the context for downstream calls.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if username := c.GetHeader(types.HeaderUsername); username != "" {
		ctx = context.WithValue(ctx, types.CtxUsername, username)
	}

	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
