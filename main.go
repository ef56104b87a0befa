package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/crestline-dev/realty_marketing_system/backend/config"
	"github.com/crestline-dev/realty_marketing_system/backend/logger"
	"github.com/crestline-dev/realty_marketing_system/backend/repository"
	"github.com/crestline-dev/realty_marketing_system/backend/routes"
	"github.com/crestline-dev/realty_marketing_system/backend/services"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

func setupRouter(redisClient *redis.Client, inv *services.InventoryService, leadSvc *services.LeadService) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, redisClient, inv, leadSvc)
	return router
}

func main() {
	loadEnv()

	zapLogger, err := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "realty-backend")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	client, err := config.ConnectDB()
	if err != nil {
		zapLogger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			zapLogger.Fatal("Error closing MongoDB connection", zap.Error(err))
		}
		zapLogger.Info("MongoDB connection closed")
	}()

	config.InitCollections(client)
	redisClient := config.InitRedis()

	projectRepo := repository.NewProjectRepository(config.ProjectCollection)
	apartmentRepo := repository.NewApartmentRepository(config.ApartmentCollection)
	leadRepo := repository.NewLeadRepository(config.LeadCollection)

	notifier := services.NewLeadNotifier(os.Getenv("LEAD_WEBHOOK_URL"), zapLogger)
	inv := services.NewInventoryService(apartmentRepo, projectRepo, zapLogger)
	leadSvc := services.NewLeadService(leadRepo, projectRepo, notifier, zapLogger)

	router := setupRouter(redisClient, inv, leadSvc)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("Server running", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Error during server shutdown", zap.Error(err))
	}
	zapLogger.Info("Server gracefully stopped")
}
