package api

import (
	"context"                     // Context for Redis operations
	"marketplace/internal/access" // Permission rules
	"marketplace/internal/domain" // Importing domain models
	"marketplace/internal/utils"  // Utility functions
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// PostItemRequest represents a new listing
type PostItemRequest struct {
	Name        string  `json:"name" binding:"required"`        // Item name must be provided
	Description string  `json:"description" binding:"required"` // Description must be provided
	Price       float64 `json:"price" binding:"required,gt=0"`  // Price must be positive
}

// ListItemsHandler returns every item for sale (the home page listing)
func ListItemsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.Item    // Cached item listing
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, utils.ItemsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"items": cached, "cached": true}) // Return cached listing
			return
		}
		var items []domain.Item // Slice to hold items
		// Fetch all items from the database
		if err := db.Find(&items).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, utils.ItemsCacheKey, items, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"items": items, "cached": false}) // Return the listing
	}
}

// PostItemHandler creates an item owned by the authenticated user
func PostItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the posting rule
		if err := access.CanPostItem(userID.(uint)); err != nil {
			// If denied, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		var req PostItemRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Price <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the item with the owner fixed at creation
		item := domain.Item{
			Name:        req.Name,        // Item name
			Description: req.Description, // Item description
			Price:       req.Price,       // Asking price
			UserID:      userID.(uint),   // Owner
		}
		// Save the item
		if err := db.Create(&item).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Owner user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to post item") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post item"})
			return
		}
		// Invalidate the home page listing and admin panel caches
		_ = utils.DeleteCache(context.Background(), rdb, utils.ItemsCacheKey)
		_ = utils.DeleteCache(context.Background(), rdb, utils.AdminPanelCacheKey)
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Item posted", "item": item})
	}
}
