package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Structured logging
)

// AuthProvider selects the single authoritative trust root for the deployment.
type AuthProvider string

const (
	AuthProviderLocal    AuthProvider = "local"    // Local JWT issued by this server
	AuthProviderSupabase AuthProvider = "supabase" // Opaque tokens validated against Supabase
)

// Config holds the application configuration
type Config struct {
	AppPort         string       // Application port
	DatabaseURL     string       // Postgres connection string
	JWTSecret       string       // Signing secret for local tokens
	AuthProvider    AuthProvider // Which authenticator is authoritative
	SupabaseURL     string       // Supabase project base URL
	SupabaseAnonKey string       // Supabase anon key for the auth endpoint
	InternalAPIKey  string       // Service-to-service bypass key (empty disables it)
	RedisAddr       string       // Redis server address (empty disables Redis)
	RedisPass       string       // Redis password
	RedisDB         int          // Redis database number
	IsProd          bool         // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	provider := AuthProvider(os.Getenv("AUTH_PROVIDER"))
	if provider != AuthProviderSupabase {
		provider = AuthProviderLocal // Default trust root
	}

	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AuthProvider:    provider,
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		InternalAPIKey:  os.Getenv("INTERNAL_API_KEY"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		IsProd:          os.Getenv("IS_PROD") == "true",
	}

	// A missing signing secret is fatal in production. In development we warn
	// loudly and fall back to a throwaway secret so local runs still work.
	if cfg.JWTSecret == "" && cfg.AuthProvider == AuthProviderLocal {
		if cfg.IsProd {
			logrus.Fatal("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = randomSecret()
		logrus.Warn("JWT_SECRET is not set; using a generated secret. Tokens will not survive a restart. Do NOT run like this in production.")
	}

	return cfg
}

// getEnv returns the environment variable value or a fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// randomSecret generates a process-lifetime signing secret for dev use
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		logrus.Fatalf("failed to generate dev secret: %v", err)
	}
	return hex.EncodeToString(b)
}
