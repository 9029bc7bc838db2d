package api

import (
	"context"                     // Context for Redis operations
	"marketplace/internal/domain" // Importing domain models
	"marketplace/internal/utils"  // Utility functions
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// UserAdminResponse represents the user data returned to admin.
// Password hashes never leave the server.
type UserAdminResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email
	IsAdmin  bool   `json:"is_admin"` // Admin flag
}

// adminPanel is the cached shape of the panel response
type adminPanel struct {
	Users        []UserAdminResponse    `json:"users"`        // All users
	Items        []domain.Item          `json:"items"`        // All items
	Transactions []domain.Transaction   `json:"transactions"` // Full mock payment ledger
	Blocks       []domain.BlockRelation `json:"blocks"`       // All block relations
}

// AdminPanelHandler returns every user, item, transaction, and block relation.
// Reachable only behind the admin middleware.
func AdminPanelHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached adminPanel       // Cached panel snapshot
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, utils.AdminPanelCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":        cached.Users,        // All users
				"items":        cached.Items,        // All items
				"transactions": cached.Transactions, // Full ledger
				"blocks":       cached.Blocks,       // All block relations
				"cached":       true,                // Indicate response is from cache
			})
			return
		}
		var users []domain.User // Slice to hold users
		// Fetch all users
		if err := db.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		var items []domain.Item // Slice to hold items
		// Fetch all items
		if err := db.Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"}) // Return on error
			return
		}
		var txs []domain.Transaction // Slice to hold transactions
		// Fetch the full ledger, newest first
		if err := db.Order("created_at desc").Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"}) // Return on error
			return
		}
		var blocks []domain.BlockRelation // Slice to hold block relations
		// Fetch all block relations
		if err := db.Find(&blocks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blocks"}) // Return on error
			return
		}
		// Map users to the response shape without password hashes
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:       u.ID,       // User ID
				Username: u.Username, // Username
				Email:    u.Email,    // Email
				IsAdmin:  u.IsAdmin,  // Admin flag
			}
		}
		// Prepare final response data
		panel := adminPanel{
			Users:        resp,   // All users
			Items:        items,  // All items
			Transactions: txs,    // Full ledger
			Blocks:       blocks, // All block relations
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, utils.AdminPanelCacheKey, panel, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{
			"users":        panel.Users,        // All users
			"items":        panel.Items,        // All items
			"transactions": panel.Transactions, // Full ledger
			"blocks":       panel.Blocks,       // All block relations
			"cached":       false,              // Indicate response is not from cache
		})
	}
}
