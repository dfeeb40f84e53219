package main

import (
	"fmt"
	"log"
	"os"

	"quicknotes/config"
	"quicknotes/handler"
	"quicknotes/middleware"
	"quicknotes/repository"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()

	dbCfg := config.LoadDatabaseConfig()
	utils.InitMongoClient(utils.MongoOptions{
		URI:             dbCfg.URI,
		MaxPoolSize:     dbCfg.MaxPoolSize,
		MinPoolSize:     dbCfg.MinPoolSize,
		MaxConnIdleTime: dbCfg.MaxConnIdleTime,
		RetryWrites:     dbCfg.RetryWrites,
	})

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// The token blacklist is optional; without Redis logout simply does
	// not revoke tokens before they expire.
	if redisCfg := config.LoadRedisConfig(); redisCfg.URL != "" {
		blacklist, err := services.NewTokenBlacklist(redisCfg.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		services.TokenBlacklist = blacklist
	} else {
		log.Println("REDIS_URL not set, token blacklist disabled")
	}
}

func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.MethodNotAllowed(c, "Method not allowed")
	})

	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	usersRepo := repository.GetUserRepo(utils.MongoClient)

	mediaStore, err := services.NewMediaStore(config.LoadMediaConfig())
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}
	speechConverter := services.NewSpeechConverter(config.LoadSpeechConfig())

	notesService := &usecase.NotesService{NotesRepo: notesRepo, Media: mediaStore}
	shareService := &usecase.ShareService{NotesRepo: notesRepo}
	userService := &usecase.UserService{UsersRepo: usersRepo}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/health", handler.HealthHandler)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/signup", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService)
			})
			auth.POST("/forgot-password", func(c *gin.Context) {
				handler.ForgotPasswordHandler(c, userService)
			})
			auth.POST("/reset-password", func(c *gin.Context) {
				handler.ResetPasswordHandler(c, userService)
			})
		}

		public.GET("/public-notes/:shareToken", func(c *gin.Context) {
			handler.PublicNoteHandler(c, shareService)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		auth := protected.Group("/auth")
		{
			auth.POST("/logout", handler.LogoutHandler)
			auth.POST("/2fa/setup", func(c *gin.Context) {
				handler.Setup2FAHandler(c, userService)
			})
			auth.POST("/2fa/verify", func(c *gin.Context) {
				handler.Verify2FAHandler(c, userService)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.GET("/", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService)
			})
			notes.POST("/", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})

			notes.PUT("/:id/archive", func(c *gin.Context) {
				handler.ArchiveNoteHandler(c, notesService)
			})
			notes.PUT("/:id/restore", func(c *gin.Context) {
				handler.RestoreNoteHandler(c, notesService)
			})
			notes.DELETE("/:id/permanently", func(c *gin.Context) {
				handler.DeleteArchivedNoteHandler(c, notesService)
			})

			notes.GET("/:id/share-info", func(c *gin.Context) {
				handler.GetShareInfoHandler(c, shareService)
			})
			notes.POST("/:id/share", func(c *gin.Context) {
				handler.EnableShareHandler(c, shareService)
			})
			notes.DELETE("/:id/share", func(c *gin.Context) {
				handler.DisableShareHandler(c, shareService)
			})

			notes.POST("/text-to-speech", func(c *gin.Context) {
				handler.TextToSpeechHandler(c, speechConverter)
			})
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
