package api

import (
	"context"                     // Context for Redis operations
	"errors"                      // Error inspection
	"marketplace/internal/access" // Permission rules
	"marketplace/internal/domain" // Importing domain models
	"marketplace/internal/utils"  // Utility functions
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"time"                        // Time formatting for audit logs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// SendMoneyRequest represents a mock payment
type SendMoneyRequest struct {
	Amount float64 `json:"amount" binding:"required"` // Transfer amount
}

// SendMoneyHandler records a mock payment from the authenticated user to the
// target user. There is no balance anywhere, so nothing is checked beyond the
// amount being positive; the ledger entry records sender, receiver, and amount
// exactly as submitted. A block relation between the two users does not stop
// the transfer.
func SendMoneyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Parse the target user ID from the path
		receiverID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			// If the path segment is not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		var req SendMoneyRequest // Bind JSON request to struct
		// Validate request shape
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check the transfer rule (rejects non-positive amounts)
		if err := access.CanTransfer(senderID.(uint), req.Amount); err != nil {
			if errors.Is(err, access.ErrInvalidAmount) {
				// Non-positive amount is a validation failure
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Anything else means the actor is not authenticated
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		var receiver domain.User // Find target user
		// Query receiver by ID
		if err := db.First(&receiver, uint(receiverID)).Error; err != nil {
			// If receiver not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
			return
		}
		// Append the ledger entry
		tx := domain.Transaction{
			SenderID:   senderID.(uint), // Sender user ID
			ReceiverID: receiver.ID,     // Receiver user ID
			Amount:     req.Amount,      // Transfer amount, recorded verbatim
		}
		// Save transaction
		if err := db.Create(&tx).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"sender_id":   senderID,    // Sender user ID
				"receiver_id": receiver.ID, // Receiver user ID
				"amount":      req.Amount,  // Transfer amount
				"error":       err.Error(), // Error message
			}).Error("Payment failed") // Log payment failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed"})
			return
		}
		// Log successful mock payment
		logrus.WithFields(logrus.Fields{
			"sender_id":   senderID,                        // Sender user ID
			"receiver_id": receiver.ID,                     // Receiver user ID
			"amount":      req.Amount,                      // Transfer amount
			"timestamp":   time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Mock payment recorded") // Log payment success
		// Invalidate the admin panel cache so the new ledger entry shows up
		if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
			_ = utils.DeleteCache(context.Background(), rdb, utils.AdminPanelCacheKey)
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Payment sent (mock)."})
	}
}
