package main

import (
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging
	"marketplace/internal/api"        // Custom package for API handlers
	"marketplace/internal/chat"       // Custom package for the chat relay
	"marketplace/internal/config"     // Custom package for configuration
	"marketplace/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	// TranslateError maps duplicate-key failures onto gorm.ErrDuplicatedKey,
	// which the block handler relies on for idempotent repeat blocks
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.GET("/", api.ListItemsHandler(db, redisClient))          // Home page item listing
	r.POST("/register", api.RegisterHandler(db))               // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret))      // Login endpoint

	// Authenticated routes
	authRequired := middleware.AuthMiddleware(cfg.JWTSecret, redisClient)
	// Inject Redis client into context for cache invalidation in handlers
	authed := r.Group("/", authRequired, func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	authed.GET("/logout", api.LogoutHandler(cfg.JWTSecret, redisClient)) // Logout endpoint
	authed.POST("/post", api.PostItemHandler(db, redisClient))           // Post item endpoint
	authed.GET("/block/:user_id", api.BlockUserHandler(db))              // Block user endpoint
	authed.POST("/send/:user_id", api.SendMoneyHandler(db))              // Mock payment endpoint

	// Chat relay
	hub := chat.NewHub()                           // In-memory room registry
	chatHandler := chat.NewHandler(hub)            // Websocket upgrade handler
	authed.GET("/ws", chatHandler.HandleWebSocket) // Realtime chat endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with auth and AdminOnly middleware
	adminGroup.Use(authRequired, middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("", api.AdminPanelHandler(db, redisClient)) // Admin panel endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
