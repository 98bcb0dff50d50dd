package middleware

import (
	"context"
	"net/http"

	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request, skipping health checks
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/health"
	}))
}

// SpanAttributes tags the active span with the request and tenant ids
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if id := c.GetString(logger.GinRequestIDKey); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}
		if id := c.GetString(logger.GinTenantIDKey); id != "" {
			span.SetAttributes(attribute.String("tenant.id", id))
		}
	}
}

// Profiling labels CPU samples with the matched route
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		labels := map[string]string{
			telemetry.LabelMethod: c.Request.Method,
			telemetry.LabelRoute:  c.FullPath(),
		}
		telemetry.WithLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
