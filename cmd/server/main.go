package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "rentnest-backend/internal/api/http"
	"rentnest-backend/internal/config"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository/postgres"
	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentNest Order Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenVerifier := security.NewTokenVerifier(cfg.Auth.JWTSecret)

	// Initialize Email Service and Notification Dispatcher
	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	dispatcher := service.NewDispatcher(
		emailSvc,
		store.NotificationRepository,
		cfg.Dispatcher.Workers,
		cfg.Dispatcher.QueueSize,
		cfg.Dispatcher.MaxRetries,
	)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	service.StartDispatcher(dispatcherCtx, dispatcher)

	// Initialize Services
	fulfillmentSvc := service.NewFulfillmentService(store.RentalRepository, dispatcher)
	statusSvc := service.NewStatusService(store.RequestRepository, fulfillmentSvc, dispatcher)
	paymentSvc := service.NewPaymentService(
		store.PaymentEventRepository,
		store.RequestRepository,
		store.ActivityLogRepository,
		statusSvc,
		cfg.Payment.WebhookSecret,
	)
	intakeSvc := service.NewIntakeService(store.RequestRepository, store.ActivityLogRepository, dispatcher)
	identitySvc := service.NewIdentityService(store.RequestRepository, store.RentalRepository)
	accountSvc := service.NewAccountService(store.NotificationRepository, store.ActivityLogRepository)

	// Initialize HTTP handlers
	requestHandler := api.NewRequestHandler(intakeSvc, statusSvc, identitySvc, fulfillmentSvc)
	webhookHandler := api.NewWebhookHandler(paymentSvc)
	accountHandler := api.NewAccountHandler(accountSvc)

	router := api.NewRouter(requestHandler, webhookHandler, accountHandler, tokenVerifier)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	stopDispatcher()
	logger.Info("Server stopped. Goodbye!")
}
