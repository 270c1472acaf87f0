package main

import (
	"fmt"
	"net/http"
	"os"

	"smartgrow/internal/config"
	"smartgrow/internal/database"
	"smartgrow/internal/handlers"
	"smartgrow/internal/logger"
	"smartgrow/internal/middleware"
	"smartgrow/internal/services"
	"smartgrow/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "smartgrow/internal/docs" // Import swagger docs
)

// @title           SmartGrow API
// @version         1.0
// @description     SmartGrow is an investment platform where users deposit funds, purchase fixed-term investment plans, collect daily income, and earn multi-level referral commissions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	settingsService := services.NewSettingsService(db)
	userService := services.NewUserService(db)
	planService := services.NewPlanService(db)
	investmentService := services.NewInvestmentService(db)
	referralService := services.NewReferralService(db, settingsService)
	depositService := services.NewDepositService(db, referralService)
	withdrawalService := services.NewWithdrawalService(db, settingsService)
	statsService := services.NewStatsService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	planHandler := handlers.NewPlanHandler(planService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	depositHandler := handlers.NewDepositHandler(depositService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	referralHandler := handlers.NewReferralHandler(referralService)
	adminHandler := handlers.NewAdminHandler(userService, planService, depositService,
		withdrawalService, settingsService, statsService, auditService)
	jobsHandler := handlers.NewJobsHandler(investmentService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	plans := v1.Group("/plans")
	plans.GET("", planHandler.ListPlans)
	plans.GET("/:id", planHandler.GetPlan)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.Purchase)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.POST("/:id/collect", investmentHandler.Collect)
	investments.GET("/:id/collections", investmentHandler.ListCollections)

	// Deposit routes
	deposits := protected.Group("/deposits")
	deposits.POST("", depositHandler.CreateDeposit)
	deposits.GET("", depositHandler.ListDeposits)

	// Withdrawal routes
	withdrawals := protected.Group("/withdrawals")
	withdrawals.POST("", withdrawalHandler.RequestWithdrawal)
	withdrawals.GET("", withdrawalHandler.ListWithdrawals)

	// Referral routes
	referrals := protected.Group("/referrals")
	referrals.GET("/stats", referralHandler.GetStats)
	referrals.GET("/commissions", referralHandler.ListCommissions)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/active", adminHandler.SetUserActive)
	admin.GET("/deposits", adminHandler.ListAllDeposits)
	admin.POST("/deposits/:id/approve", adminHandler.ApproveDeposit)
	admin.POST("/deposits/:id/reject", adminHandler.RejectDeposit)
	admin.GET("/withdrawals", adminHandler.ListAllWithdrawals)
	admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
	admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
	admin.GET("/plans", adminHandler.ListAllPlans)
	admin.POST("/plans", adminHandler.CreatePlan)
	admin.PUT("/plans/:id", adminHandler.UpdatePlan)
	admin.DELETE("/plans/:id", adminHandler.DeletePlan)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings/:key", adminHandler.UpdateSetting)
	admin.GET("/stats", adminHandler.GetStats)

	// Internal maintenance endpoints for the scheduled expiry sweep
	jobs := router.Group("/internal/jobs")
	jobs.Use(middleware.JobAuthMiddleware(appConfig.JobAPIKey))
	jobs.POST("/expire-investments", jobsHandler.ExpireInvestments)

	log.Infof("Starting SmartGrow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
