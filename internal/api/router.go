package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bloglist/bloglist-api/docs"
	"github.com/bloglist/bloglist-api/internal/api/handler"
	"github.com/bloglist/bloglist-api/internal/api/middleware"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Users    ports.UserService
	Auth     ports.AuthService
	Blogs    ports.BlogService
	Identity ports.IdentityResolver
	// Pingers are checked by the readiness probe, keyed by dependency name.
	Pingers  map[string]handler.Pinger
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	useGlobalMiddleware(e, deps.Logger)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Users)
	authHandler := handler.NewAuthHandler(deps.Auth)
	blogHandler := handler.NewBlogHandler(deps.Blogs)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/users", userHandler.Register)
	apiGroup.GET("/users", userHandler.List)
	apiGroup.POST("/login", authHandler.Login)

	// Only the routes that act on behalf of a user resolve the bearer token.
	identity := middleware.Identity(deps.Identity)
	requireIdentity := middleware.RequireIdentity()
	apiGroup.GET("/blogs", blogHandler.List)
	apiGroup.GET("/blogs/stats", blogHandler.Stats)
	apiGroup.POST("/blogs", blogHandler.Create, identity, requireIdentity)
	apiGroup.PUT("/blogs/:id", blogHandler.Update)
	apiGroup.DELETE("/blogs/:id", blogHandler.Delete, identity, requireIdentity)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// useGlobalMiddleware registers the chain shared by every route. Recover is
// innermost: a handler panic is logged and counted as a 500.
func useGlobalMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: middleware.NewRequestID,
	}))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.Recover())
}
