package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetchat/config"
	"vetchat/database"
	appointmentRepo "vetchat/database/repository/appointment"
	conversationRepo "vetchat/database/repository/conversation"
	"vetchat/handlers"
	"vetchat/middleware"
	"vetchat/routes"
	"vetchat/services/appointment"
	"vetchat/services/chat"
	"vetchat/services/intelligence"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	aiClient, err := intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessionRepo := conversationRepo.NewMongoConversationRepo(utils.GetCacheClient())
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	flowService := &appointment.DefaultFlowService{
		Sessions:     sessionRepo,
		Appointments: apptRepo,
	}
	chatService := &chat.DefaultChatService{
		Sessions: sessionRepo,
		Booking:  flowService,
		AI:       aiClient,
		Intent:   chat.NewKeywordIntentPolicy(),
	}

	chatHandler := handlers.NewChatHandler(chatService)
	apptHandler := handlers.NewAppointmentHandler(flowService, apptRepo)

	routes.RegisterRoutes(router, chatHandler, apptHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
