package middleware

import (
	"marketplace/internal/access" // Permission rules
	"marketplace/internal/domain" // Importing domain models
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnlyMiddleware checks the user's admin flag from the database on each
// request. A non-admin is turned away with a notice rather than a bare error,
// mirroring the "Admins only" redirect on the original panel.
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check the admin flag through the permission rules
		if err := access.CanViewAdmin(&user); err != nil {
			// If not admin, turn away with a notice pointing back home
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"notice": "Admins only.", "redirect": "/"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
