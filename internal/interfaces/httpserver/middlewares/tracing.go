package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a server span per request, continuing any
// incoming W3C trace context. The span is named after the route template
// and carries the playground outcome of failed envelopes.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	tracer := otel.Tracer(serviceName)

	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := routeOf(c)
		attrs := []attribute.KeyValue{
			semconv.HTTPMethod(c.Request.Method),
			semconv.HTTPRoute(route),
			attribute.String("url.path", c.Request.URL.Path),
		}
		if requestID := RequestIDFromContext(c); requestID != "" {
			attrs = append(attrs, attribute.String("request.id", requestID))
		}

		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCode(status))
		if outcome := c.GetString(OutcomeKey); outcome != "" {
			span.SetAttributes(attribute.String("playground.outcome", outcome))
		}
		if status >= 500 {
			span.SetStatus(codes.Error, c.Errors.String())
			if err := c.Errors.Last(); err != nil {
				span.RecordError(err)
			}
		}
	}
}
