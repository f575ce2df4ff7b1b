package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/mealshare/gin-meal-api/docs" // Import generated docs
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mealshare/gin-meal-api/internal/auth"
	"github.com/mealshare/gin-meal-api/internal/config"
	"github.com/mealshare/gin-meal-api/internal/controllers"
	"github.com/mealshare/gin-meal-api/internal/database"
	"github.com/mealshare/gin-meal-api/internal/middleware"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/mealshare/gin-meal-api/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                *gorm.DB
	configuration     *config.Config
	oauthService      *auth.OAuthService
	authController    *controllers.AuthController
	recipeController  controllers.RecipeController
	ratingController  controllers.RatingController
	commentController controllers.CommentController
	reportController  controllers.ReportController
	userController    controllers.UserController
)

// @title Meal Sharing API
// @version 1.0
// @description A recipe sharing API with ratings, comments and moderation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	detector := services.NewSaplingDetector(configuration.AIDetectorURL, configuration.AIDetectorKey)
	userService := services.NewUserService(db)
	recipeService := services.NewRecipeService(db, detector)
	ratingService := services.NewRatingService(db)
	commentService := services.NewCommentService(db, ratingService)
	reportService := services.NewReportService(db)

	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)
	authController = controllers.NewAuthController(userService, configuration.JWTSecret)
	recipeController = controllers.NewRecipeController(recipeService)
	ratingController = controllers.NewRatingController(ratingService)
	commentController = controllers.NewCommentController(commentService)
	reportController = controllers.NewReportController(reportService)
	userController = controllers.NewUserController(userService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	// Seed a default admin only on a fresh database
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding default admin user")
		seedDefaultAdmin()
	}
	return db
}

// seedDefaultAdmin creates the initial admin account. The password comes
// from ADMIN_PASSWORD and must be changed after first login.
func seedDefaultAdmin() {
	admin := &models.User{
		Email:    config.GetEnvWithDefault("ADMIN_EMAIL", "admin@mealshare.local"),
		Password: config.GetEnvWithDefault("ADMIN_PASSWORD", "changeme"),
		Role:     models.RoleAdmin,
	}
	checkPanicErr(admin.HashPassword())
	checkPanicErr(db.Create(admin).Error)
	log.WithField("email", admin.Email).Info("Default admin user created")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// OAuth2 token endpoint for API clients
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		// Authentication routes
		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
		}

		// Public recipe reads
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", recipeController.GetAllRecipes)
			recipes.GET("/by-ingredients", recipeController.SearchByIngredients)
			recipes.GET("/name/:name", recipeController.SearchByName)
			recipes.GET("/category/:category", recipeController.SearchByCategory)
			recipes.GET("/tag/:tag", recipeController.SearchByTag)
			recipes.GET("/preparation_time/:minutes", recipeController.SearchByPreparationTime)
			recipes.GET("/rating/:rating", recipeController.SearchByRating)
			recipes.GET("/author/:author", recipeController.SearchByAuthor)
			recipes.GET("/:id", recipeController.GetRecipeByID)
			recipes.GET("/:id/comments", commentController.GetCommentsByRecipe)
			recipes.GET("/:id/ratings", ratingController.GetRatingsByRecipe)
		}
		v1.GET("/comments/:id", commentController.GetCommentByID)

		// Protected routes (requires JWT authentication)
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			protected.POST("/recipes", recipeController.CreateRecipe)
			protected.PUT("/recipes/:id", recipeController.UpdateRecipe)
			protected.DELETE("/recipes/:id", recipeController.DeleteRecipe)
			protected.PUT("/recipes/:id/rating", ratingController.UpsertRating)
			protected.DELETE("/ratings/:id", ratingController.DeleteRating)

			protected.POST("/comments", commentController.CreateComment)
			protected.PUT("/comments/:id", commentController.UpdateComment)
			protected.DELETE("/comments/:id", commentController.DeleteComment)
			protected.GET("/users/:user/comments", commentController.GetCommentsByUser)
			protected.GET("/users/me", userController.GetMe)

			protected.POST("/reports", reportController.CreateReport)
			protected.GET("/reports/my", reportController.GetMyReports)

			// Admin-only moderation and user administration
			adminApi := protected.Group("/admin")
			adminApi.Use(middleware.RequireRole(models.RoleAdmin))
			{
				adminApi.GET("/reports", reportController.GetAllReports)
				adminApi.GET("/reports/recipe/:id", reportController.GetReportsByRecipe)
				adminApi.GET("/reports/comment/:id", reportController.GetReportsByComment)
				adminApi.GET("/reports/:id", reportController.GetReportByID)
				adminApi.PUT("/reports/:id/status", reportController.UpdateReportStatus)
				adminApi.DELETE("/reports/:id", reportController.DeleteReport)
				adminApi.PUT("/users/:id/role", userController.UpdateUserRole)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-meal-api",
	})
}
