package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lakshmanbhukya/threadly-backend/internal/config"
	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/handlers"
	"github.com/lakshmanbhukya/threadly-backend/internal/middleware"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/internal/realtime"
	"github.com/lakshmanbhukya/threadly-backend/internal/routes"
	"github.com/lakshmanbhukya/threadly-backend/internal/services"
	"github.com/lakshmanbhukya/threadly-backend/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Threadly Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	tableModels := []interface{}{
		&models.User{},
		&models.Thread{},
		&models.PollOption{},
		&models.Post{},
		&models.Comment{},
		&models.Conversation{},
		&models.Message{},
		&models.MessageReceipt{},
		&models.Notification{},
	}

	// Conversation.LastMessage and Message.Conversation reference each other;
	// create tables first, then constraints.
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = true
	for _, m := range tableModels {
		if err := database.DB.AutoMigrate(m); err != nil {
			logger.Fatal().Err(err).Msgf("Failed to migrate table for %T", m)
		}
	}
	database.DB.Config.DisableForeignKeyConstraintWhenMigrating = false
	if err := database.DB.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to add database constraints")
	}
	logger.Info().Msg("Database migrations complete")

	// Realtime layer: registry + channel router, with the router doubling as
	// the publisher injected into the notification dispatcher.
	registry := realtime.NewRegistry()
	channelRouter := realtime.NewRouter()
	notifier := services.NewNotifier(database.DB, channelRouter)
	handlers.Wire(registry, channelRouter, notifier)

	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// The socket.io endpoint polls aggressively; keep it out of the limiter.
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterThreadRoutes(api)
		routes.RegisterPostRoutes(api)
		routes.RegisterCommentRoutes(api)
		routes.RegisterChatRoutes(api)
		routes.RegisterNotificationRoutes(api)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	socketServer := handlers.InitSocketServer()
	defer socketServer.Close()

	r.GET("/socket.io/*any", handlers.SocketHandler(socketServer))
	r.POST("/socket.io/*any", handlers.SocketHandler(socketServer))

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
