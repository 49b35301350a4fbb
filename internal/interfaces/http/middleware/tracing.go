package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxTracedRequestIDLength bounds the request id copied onto spans
const MaxTracedRequestIDLength = 128

// Tracing starts a server span per request through otelgin and tags it with
// the request id. Must run after RequestID.
//
// otelgin ends its span once the rest of the chain returns, so tagging happens
// in a second handler that runs inside the span.
func Tracing(serviceName string, tp trace.TracerProvider) gin.HandlersChain {
	return gin.HandlersChain{
		otelgin.Middleware(serviceName, otelgin.WithTracerProvider(tp)),
		annotateSpan,
	}
}

func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if span.IsRecording() {
		if id := requestIDFrom(c); id != "" {
			if len(id) > MaxTracedRequestIDLength {
				id = id[:MaxTracedRequestIDLength]
			}
			span.SetAttributes(attribute.String("request_id", id))
		}
	}
	c.Next()
}
