package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter() (*gin.Engine, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing("bistro-test", tp)...)
	router.GET("/menu/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, recorder
}

func TestTracing(t *testing.T) {
	t.Run("tags the span with the request id", func(t *testing.T) {
		router, recorder := newTracedRouter()
		req := httptest.NewRequest(http.MethodGet, "/menu/42", nil)
		req.Header.Set(RequestIDHeader, "req-trace-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Contains(t, spanAttributes(spans[0]), "request_id=req-trace-1")
	})

	t.Run("oversized request id is replaced before tracing", func(t *testing.T) {
		router, recorder := newTracedRouter()
		req := httptest.NewRequest(http.MethodGet, "/menu/42", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 300))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Contains(t, spanAttributes(spans[0]), "request_id="+w.Header().Get(RequestIDHeader))
	})
}

func spanAttributes(span sdktrace.ReadOnlySpan) []string {
	var out []string
	for _, kv := range span.Attributes() {
		out = append(out, string(kv.Key)+"="+kv.Value.Emit())
	}
	return out
}
