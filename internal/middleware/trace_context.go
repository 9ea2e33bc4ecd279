package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/forgelabs/forge-backend/internal/platform/ctxutil"
)

// AttachTraceContext stamps every request with a request id and, when a
// span is recording, the active trace id. Both are echoed as response
// headers for client correlation.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		td := &ctxutil.TraceData{RequestID: requestID}
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			td.TraceID = span.SpanContext().TraceID().String()
		}
		ctx := ctxutil.WithTraceData(c.Request.Context(), td)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", requestID)
		if td.TraceID != "" {
			c.Header("X-Trace-ID", td.TraceID)
		}
		c.Next()
	}
}
