package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key the response envelope reads the
// request id from when building its metadata block.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags each request with an id that is echoed back both
// in the X-Request-ID response header and in the envelope metadata. An id
// already supplied by the caller is kept, so a gateway's trace id survives
// the hop.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
