package api

import (
	"math"
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"billtracker/internal/auth"    // Password hashing and tokens
	"billtracker/internal/domain"  // Domain models
	"billtracker/internal/limiter" // Login attempt limiter
	"billtracker/internal/storage" // Storage abstraction

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the created/authenticated user and a fresh token
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterHandler creates a local-credential user and issues a token
func RegisterHandler(store storage.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("password hashing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		user := domain.User{
			Name:         req.Name,
			Email:        strings.ToLower(req.Email), // Emails compare case-insensitively
			PasswordHash: hash,
		}
		if err := store.CreateUser(c.Request.Context(), &user); err != nil {
			if err == storage.ErrDuplicateEmail {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			logrus.WithField("error", err.Error()).Error("user creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		token, err := auth.GenerateToken(user.ID, jwtSecret)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{User: &user, Token: token})
	}
}

// LoginHandler authenticates local credentials, enforcing the per-email
// lockout before credentials are ever checked. A locked identifier is
// refused even with the correct password.
func LoginHandler(store storage.Store, attempts limiter.LoginLimiter, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		email := strings.ToLower(req.Email)

		blocked, retryAfter, err := attempts.IsBlocked(c.Request.Context(), email)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("attempt limiter unavailable")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		if blocked {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":               "Too many failed login attempts, please try again later",
				"retry_after_seconds": seconds,
			})
			return
		}

		user, err := store.GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		// Same response for unknown email and wrong password
		if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
			_ = attempts.RecordAttempt(c.Request.Context(), email, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		_ = attempts.RecordAttempt(c.Request.Context(), email, true)

		token, err := auth.GenerateToken(user.ID, jwtSecret)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		logrus.WithField("user_id", user.ID).Info("User logged in")
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}
