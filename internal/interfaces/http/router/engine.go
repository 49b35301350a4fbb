package router

import (
	"net/http"

	"github.com/bistro/backend/internal/infrastructure/config"
	"github.com/bistro/backend/internal/infrastructure/logger"
	"github.com/bistro/backend/internal/interfaces/http/dto"
	"github.com/bistro/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type engineOptions struct {
	tracer trace.TracerProvider
}

// EngineOption adjusts NewEngine
type EngineOption func(*engineOptions)

// WithTracing opens a server span per request on tp
func WithTracing(tp trace.TracerProvider) EngineOption {
	return func(o *engineOptions) { o.tracer = tp }
}

// NewEngine builds the gin engine with the global middleware chain:
// request id, optional tracing, request logging, recovery, security headers, CORS and body limit.
func NewEngine(cfg *config.Config, log *zap.Logger, opts ...EngineOption) (*gin.Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	if o.tracer != nil {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, o.tracer)...)
	}
	engine.Use(
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Route not found", c.GetString(middleware.RequestIDKey)))
	})

	return engine, nil
}
