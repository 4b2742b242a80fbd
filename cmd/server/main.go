package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "labreserve-backend/internal/api/http"
	"labreserve-backend/internal/config"
	"labreserve-backend/internal/gateway"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository/postgres"
	"labreserve-backend/internal/security"
	"labreserve-backend/internal/service"
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
	logger.Info("Starting LabReserve Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Payment Gateway
	var paymentGateway gateway.PaymentGateway
	switch cfg.Gateway.Type {
	case "", "sandbox":
		logger.Info("Using sandbox payment gateway", "base_url", cfg.Gateway.BaseURL)
		paymentGateway = gateway.NewSandboxGateway(cfg.Gateway.BaseURL)
	default:
		logger.Error("Unsupported gateway type", "type", cfg.Gateway.Type)
		log.Fatalf("Gateway type '%s' not yet implemented", cfg.Gateway.Type)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	bookingSvc := service.NewBookingService(store, paymentGateway, emailSvc)
	paymentSvc := service.NewPaymentService(store, paymentGateway, emailSvc)
	scheduleSvc := service.NewScheduleService(store)
	catalogSvc := service.NewCatalogService(store)
	noteSvc := service.NewNotificationService(store)

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, bookingSvc, paymentSvc, scheduleSvc, catalogSvc, noteSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
