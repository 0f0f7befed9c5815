package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retaildocs/backend/internal/infrastructure/logger"
	"github.com/retaildocs/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router configuration
type Config struct {
	Mode         string
	APIVersion   string
	AllowOrigins []string
}

// Router wires middleware and versioned API routes onto a gin engine
type Router struct {
	engine     *gin.Engine
	cfg        Config
	log        *zap.Logger
	registrars []RouteRegistrar
}

// New creates a Router with the standard middleware chain installed
func New(cfg Config, log *zap.Logger) *Router {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	return &Router{engine: engine, cfg: cfg, log: log}
}

// Register adds handlers whose routes are installed by Setup
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup mounts all registered routes under /api/{version} and returns the engine
func (r *Router) Setup() *gin.Engine {
	api := r.engine.Group("/api/" + r.cfg.APIVersion)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
	return r.engine
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
