package main

import (
	"context" // context package is needed for Redis operations

	"billtracker/internal/api"     // Route handlers and router assembly
	"billtracker/internal/auth"    // Authenticator variants
	"billtracker/internal/config"  // Configuration
	"billtracker/internal/db"      // Database connection
	"billtracker/internal/limiter" // Limiter implementations
	"billtracker/internal/storage" // Storage implementations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Storage backend: Postgres when configured, in-memory otherwise (dev only)
	var store storage.Store
	if cfg.DatabaseURL != "" {
		gormDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		store = storage.NewGormStore(gormDB)
	} else {
		if cfg.IsProd {
			logrus.Fatal("DATABASE_URL must be set in production")
		}
		logrus.Warn("DATABASE_URL is not set; using the in-memory store. Data will not survive a restart.")
		store = storage.NewMemoryStore()
	}

	// Redis is optional: with it, limiter state is shared across instances
	// and bill reads are cached; without it everything stays in-process.
	var redisClient *redis.Client
	var loginLimiter limiter.LoginLimiter
	var generalLimiter, authLimiter limiter.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		loginLimiter = limiter.NewRedisLoginLimiter(redisClient)
		generalLimiter = limiter.NewRedisRateLimiter(redisClient, limiter.RateMaxGeneral, "ratelimit:general")
		authLimiter = limiter.NewRedisRateLimiter(redisClient, limiter.RateMaxAuth, "ratelimit:auth")
	} else {
		if cfg.IsProd {
			logrus.Warn("REDIS_ADDR is not set; limiter state is per-process and will not hold across instances")
		}
		loginLimiter = limiter.NewMemoryLoginLimiter()
		generalLimiter = limiter.NewMemoryRateLimiter(limiter.RateMaxGeneral)
		authLimiter = limiter.NewMemoryRateLimiter(limiter.RateMaxAuth)
	}

	// Exactly one trust root per deployment, chosen at startup
	var authenticator auth.Authenticator
	switch cfg.AuthProvider {
	case config.AuthProviderSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			logrus.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY must be set when AUTH_PROVIDER=supabase")
		}
		authenticator = auth.NewSupabaseAuthenticator(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	default:
		authenticator = auth.NewLocalAuthenticator(cfg.JWTSecret, store)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.RouterDeps{
		Store:          store,
		Authenticator:  authenticator,
		LoginLimiter:   loginLimiter,
		GeneralLimiter: generalLimiter,
		AuthLimiter:    authLimiter,
		Redis:          redisClient,
		JWTSecret:      cfg.JWTSecret,
		InternalAPIKey: cfg.InternalAPIKey,
	})

	// Only loopback proxies may set client-IP headers; rate-limit keys depend on it
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
