package api

import (
	"net/http" // HTTP status codes

	"billtracker/internal/domain"     // Domain models
	"billtracker/internal/middleware" // Identity accessor
	"billtracker/internal/storage"    // Storage abstraction

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CategoryRequest is the create/update payload. The owner is always taken
// from the authenticated identity, never from the body.
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ListCategoriesHandler lists the caller's categories. Ownership is enforced
// by scoping the query to the acting user, not by post-hoc filtering.
func ListCategoriesHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		categories, err := store.ListCategoriesByUser(c.Request.Context(), identity.ID)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("category listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed"})
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategoryHandler creates a category owned by the caller
func CreateCategoryHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		category := domain.Category{
			Name:   req.Name,
			Color:  req.Color,
			Icon:   req.Icon,
			UserID: identity.ID,
		}
		if err := store.CreateCategory(c.Request.Context(), &category); err != nil {
			logrus.WithField("error", err.Error()).Error("category creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Creation failed"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GetCategoryHandler reads one category after the ownership check
func GetCategoryHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := loadOwnedCategory(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// UpdateCategoryHandler updates an owned category. The owner id is fixed;
// only the display fields are writable.
func UpdateCategoryHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := loadOwnedCategory(c, store)
		if !ok {
			return
		}
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		category.Name = req.Name
		category.Color = req.Color
		category.Icon = req.Icon
		if err := store.UpdateCategory(c.Request.Context(), category); err != nil {
			logrus.WithField("error", err.Error()).Error("category update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler deletes an owned category
func DeleteCategoryHandler(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := loadOwnedCategory(c, store)
		if !ok {
			return
		}
		if err := store.DeleteCategory(c.Request.Context(), category.ID); err != nil {
			logrus.WithField("error", err.Error()).Error("category deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Deletion failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

// loadOwnedCategory resolves identity, loads the target and checks
// ownership. It writes the error response and returns ok=false on any
// failure: 401 unresolved, 404 absent, 403 foreign owner.
func loadOwnedCategory(c *gin.Context, store storage.Store) (*domain.Category, bool) {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	category, err := store.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		logrus.WithField("error", err.Error()).Error("category lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return nil, false
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return nil, false
	}
	if category.UserID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}
	return category, true
}
