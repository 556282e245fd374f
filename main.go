package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/controllers"
	"github.com/digibistro/digibistro-api/middleware"
	"github.com/digibistro/digibistro-api/models"
	"github.com/digibistro/digibistro-api/services"
)

func main() {
	log.Println("Starting DigiBistro API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.MenuImage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3 for menu images when a bucket is configured
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, menu image uploads disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	setupRouter(router, cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter attaches middleware and all API routes
func setupRouter(router *gin.Engine, cfg *config.Config) {
	// CORS settings
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Cookie-backed sessions carry login state, the cart and the payment
	// method between requests
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("digibistro_session", store))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/register-admin", controllers.RegisterAdmin)
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", controllers.Logout)
		}

		v1.GET("/menu", controllers.GetMenu)
		v1.PUT("/menu/:item/image",
			middleware.RequireLogin(), middleware.RequireAdmin(),
			controllers.UploadMenuImage)

		ordering := v1.Group("", middleware.RequireLogin())
		{
			ordering.POST("/cart", controllers.UpdateCart)
			ordering.GET("/cart", controllers.GetCart)
			ordering.DELETE("/cart", controllers.ResetCart)
			ordering.POST("/payment", controllers.SelectPayment)
			ordering.POST("/orders", controllers.PlaceOrder)
			ordering.GET("/orders", controllers.ListOrders)
		}
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "DigiBistro API is running",
	})
}

// databaseStatus checks database connectivity and returns row counts
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	counts := gin.H{}
	for model, table := range map[interface{}]string{
		&models.User{}:      "users",
		&models.Order{}:     "orders",
		&models.OrderItem{}: "order_items",
	} {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to count rows in " + table,
				},
			})
			return
		}
		counts[table] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"counts":  counts,
	})
}
