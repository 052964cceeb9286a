package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/infrastructure/auth"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/logger"
	"github.com/orderdesk/backend/internal/interfaces/http/handler"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
)

// Config holds the dependencies for building the HTTP router
type Config struct {
	AppConfig     *config.Config
	Logger        *zap.Logger
	JWTService    *auth.JWTService
	SystemHandler *handler.SystemHandler
	ImportHandler *handler.LeadImportHandler
}

// New builds the gin engine with all middleware and routes wired
func New(cfg Config) *gin.Engine {
	if cfg.AppConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.AppConfig.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	engine.Use(middleware.BodyLimit(cfg.AppConfig.Import.MaxFileSize))

	engine.GET("/health", cfg.SystemHandler.Health)
	engine.GET("/ready", cfg.SystemHandler.Ready)

	api := engine.Group("/api/v1")
	// Outside production the X-Tenant-ID / X-User-ID header fallback in the
	// handlers stands in for a token.
	if cfg.JWTService != nil && cfg.AppConfig.App.Env == "production" {
		jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtCfg.Logger = cfg.Logger
		api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	}

	cfg.ImportHandler.RegisterRoutes(api)

	return engine
}
