package api

import (
	"context"                     // Context for Redis operations
	"errors"                      // Error inspection
	"marketplace/internal/access" // Permission rules
	"marketplace/internal/domain" // Importing domain models
	"marketplace/internal/utils"  // Utility functions
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// BlockUserHandler creates a directed block relation from the authenticated
// user to the target user. Blocking has no effect on transfers or chat; the
// relation is only recorded.
func BlockUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the target user ID from the path
		targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			// If the path segment is not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		// Check the blocking rule (rejects self-blocks)
		if err := access.CanBlock(userID.(uint), uint(targetID)); err != nil {
			if errors.Is(err, access.ErrSelfBlock) {
				// Self-block is an invalid operation
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Anything else means the actor is not authenticated
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		var target domain.User // Find target user
		// Query target by ID
		if err := db.First(&target, uint(targetID)).Error; err != nil {
			// If target not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}
		// Record the block relation
		block := domain.BlockRelation{BlockerID: userID.(uint), BlockedID: uint(targetID)}
		if err := db.Create(&block).Error; err != nil {
			// The unique index makes a repeat block a duplicate-key error;
			// treat that as success so blocking is idempotent
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusOK, gin.H{"message": "User blocked."})
				return
			}
			// Return internal server error for anything else
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
			return
		}
		// Invalidate the admin panel cache so the new relation shows up
		if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
			_ = utils.DeleteCache(context.Background(), rdb, utils.AdminPanelCacheKey)
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "User blocked."})
	}
}
