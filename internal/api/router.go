package api

import (
	"billtracker/internal/auth"       // Authenticator capability
	"billtracker/internal/limiter"    // Limiter implementations
	"billtracker/internal/middleware" // Gate, auth, rate limit
	"billtracker/internal/storage"    // Storage abstraction

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// RouterDeps carries everything the route tree needs. All state that was
// global in earlier iterations (limiter maps, redis client) is injected
// here so backends can be swapped without touching call sites.
type RouterDeps struct {
	Store          storage.Store
	Authenticator  auth.Authenticator
	LoginLimiter   limiter.LoginLimiter
	GeneralLimiter limiter.RateLimiter
	AuthLimiter    limiter.RateLimiter
	Redis          *redis.Client // nil disables read caching
	JWTSecret      string
	InternalAPIKey string
}

// NewRouter assembles the full route tree:
// gate -> rate limit -> per-route auth -> ownership -> handler.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.Use(middleware.AuthGate(deps.InternalAPIKey))
	api.Use(middleware.RateLimit(deps.GeneralLimiter))

	api.GET("/healthz", HealthzHandler())

	// Public auth routes carry the stricter limiter on top of the general one
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(deps.AuthLimiter))
	authGroup.POST("/register", RegisterHandler(deps.Store, deps.JWTSecret))
	authGroup.POST("/login", LoginHandler(deps.Store, deps.LoginLimiter, deps.JWTSecret))

	// Everything below requires a validated identity
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(deps.Authenticator))

	authed.GET("/users/me", MeHandler())
	authed.GET("/users/:id", GetUserHandler(deps.Store))

	authed.GET("/categories", ListCategoriesHandler(deps.Store))
	authed.POST("/categories", CreateCategoryHandler(deps.Store))
	authed.GET("/categories/:id", GetCategoryHandler(deps.Store))
	authed.PUT("/categories/:id", UpdateCategoryHandler(deps.Store))
	authed.DELETE("/categories/:id", DeleteCategoryHandler(deps.Store))

	authed.GET("/bills", ListBillsHandler(deps.Store))
	authed.GET("/bills/upcoming", UpcomingBillsHandler(deps.Store, deps.Redis))
	authed.POST("/bills", CreateBillHandler(deps.Store, deps.Redis))
	authed.GET("/bills/:id", GetBillHandler(deps.Store))
	authed.PUT("/bills/:id", UpdateBillHandler(deps.Store, deps.Redis))
	authed.DELETE("/bills/:id", DeleteBillHandler(deps.Store, deps.Redis))

	// Destructive admin route: internal key only, no bearer path to it
	api.DELETE("/clear-all-data", middleware.RequireInternalKey(deps.InternalAPIKey), ClearAllDataHandler(deps.Store))

	return r
}
