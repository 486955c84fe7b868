package api

import (
	"context"
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"billtracker/internal/domain"     // Domain models
	"billtracker/internal/middleware" // Identity accessor
	"billtracker/internal/storage"    // Storage abstraction
	"billtracker/internal/utils"      // Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// upcomingCacheTTL bounds staleness of the cached upcoming-bills view.
const upcomingCacheTTL = 5 * time.Minute

// BillRequest is the create payload. AmountCents is an integer number of
// minor currency units; floats never enter the money path.
type BillRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	AmountCents *int64    `json:"amount_cents" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Paid        bool      `json:"paid"`
	CategoryID  *string   `json:"category_id"`
}

// BillUpdateRequest is the partial-update payload; nil fields are left
// untouched. The owner id is never writable.
type BillUpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	AmountCents *int64     `json:"amount_cents"`
	DueDate     *time.Time `json:"due_date"`
	Paid        *bool      `json:"paid"`
	CategoryID  *string    `json:"category_id"`
}

// ListBillsHandler lists the caller's bills, query scoped to the owner
func ListBillsHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		bills, err := store.ListBillsByUser(c.Request.Context(), identity.ID)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("bill listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed"})
			return
		}
		if bills == nil {
			bills = []domain.Bill{}
		}
		c.JSON(http.StatusOK, bills)
	}
}

// UpcomingBillsHandler returns unpaid future bills ascending by due date,
// capped at ?limit= (default 10). Results are cached in Redis when a client
// is configured; mutations invalidate the cache.
func UpcomingBillsHandler(store storage.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		limit := storage.DefaultUpcomingLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}

		cacheKey := utils.UpcomingBillsKey(identity.ID, limit)
		if rdb != nil {
			var cached []domain.Bill
			if hit, err := utils.GetCache(c.Request.Context(), rdb, cacheKey, &cached); err == nil && hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		bills, err := store.GetUpcomingBills(c.Request.Context(), identity.ID, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("upcoming bills query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed"})
			return
		}
		if bills == nil {
			bills = []domain.Bill{}
		}
		if rdb != nil {
			_ = utils.SetCache(c.Request.Context(), rdb, cacheKey, bills, upcomingCacheTTL)
		}
		c.JSON(http.StatusOK, bills)
	}
}

// CreateBillHandler creates a bill owned by the caller. A category id, when
// given, must name one of the caller's own categories; a foreign category
// gets the same response as a missing one.
func CreateBillHandler(store storage.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req BillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if *req.AmountCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents must not be negative"})
			return
		}
		if req.CategoryID != nil && !categoryOwnedBy(c, store, *req.CategoryID, identity.ID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}

		bill := domain.Bill{
			Name:        req.Name,
			Description: req.Description,
			AmountCents: *req.AmountCents,
			DueDate:     req.DueDate,
			Paid:        req.Paid,
			UserID:      identity.ID,
			CategoryID:  req.CategoryID,
		}
		if err := store.CreateBill(c.Request.Context(), &bill); err != nil {
			logrus.WithField("error", err.Error()).Error("bill creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Creation failed"})
			return
		}
		invalidateBillCache(c.Request.Context(), rdb, identity.ID)
		logrus.WithFields(logrus.Fields{
			"user_id":      identity.ID,
			"bill_id":      bill.ID,
			"amount_cents": bill.AmountCents,
		}).Info("Bill created")
		c.JSON(http.StatusCreated, bill)
	}
}

// GetBillHandler reads one bill after the ownership check
func GetBillHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := loadOwnedBill(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

// UpdateBillHandler applies a partial update to an owned bill
func UpdateBillHandler(store storage.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := loadOwnedBill(c, store)
		if !ok {
			return
		}
		var req BillUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.Name != nil {
			bill.Name = *req.Name
		}
		if req.Description != nil {
			bill.Description = *req.Description
		}
		if req.AmountCents != nil {
			if *req.AmountCents < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents must not be negative"})
				return
			}
			bill.AmountCents = *req.AmountCents
		}
		if req.DueDate != nil {
			bill.DueDate = *req.DueDate
		}
		if req.Paid != nil {
			bill.Paid = *req.Paid
		}
		if req.CategoryID != nil {
			if *req.CategoryID == "" {
				bill.CategoryID = nil // Explicit empty string detaches the category
			} else {
				if !categoryOwnedBy(c, store, *req.CategoryID, bill.UserID) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
					return
				}
				bill.CategoryID = req.CategoryID
			}
		}

		if err := store.UpdateBill(c.Request.Context(), bill); err != nil {
			logrus.WithField("error", err.Error()).Error("bill update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		invalidateBillCache(c.Request.Context(), rdb, bill.UserID)
		c.JSON(http.StatusOK, bill)
	}
}

// DeleteBillHandler deletes an owned bill
func DeleteBillHandler(store storage.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		bill, ok := loadOwnedBill(c, store)
		if !ok {
			return
		}
		if err := store.DeleteBill(c.Request.Context(), bill.ID); err != nil {
			logrus.WithField("error", err.Error()).Error("bill deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deletion failed"})
			return
		}
		invalidateBillCache(c.Request.Context(), rdb, bill.UserID)
		c.JSON(http.StatusOK, gin.H{"message": "Bill deleted"})
	}
}

// loadOwnedBill resolves identity, loads the target and checks ownership.
// 401 unresolved, 404 absent, 403 foreign owner; contents never leak on 403.
func loadOwnedBill(c *gin.Context, store storage.Store) (*domain.Bill, bool) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	bill, err := store.GetBillByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		logrus.WithField("error", err.Error()).Error("bill lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return nil, false
	}
	if bill == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
		return nil, false
	}
	if bill.UserID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}
	return bill, true
}

// categoryOwnedBy reports whether categoryID exists and belongs to userID
func categoryOwnedBy(c *gin.Context, store storage.Store, categoryID, userID string) bool {
	category, err := store.GetCategoryByID(c.Request.Context(), categoryID)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("category lookup failed")
		return false
	}
	return category != nil && category.UserID == userID
}

// invalidateBillCache drops the user's cached bill views after a mutation
func invalidateBillCache(ctx context.Context, rdb *redis.Client, userID string) {
	if rdb == nil {
		return
	}
	if err := utils.InvalidatePrefix(ctx, rdb, "bills:upcoming:user:"+userID+":"); err != nil {
		logrus.WithField("error", err.Error()).Warn("bill cache invalidation failed")
	}
}
