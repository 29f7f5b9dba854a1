package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketscan-service/internal/domain/repository"
	"ticketscan-service/internal/infrastructure/config"
	"ticketscan-service/internal/infrastructure/oauth"
	"ticketscan-service/internal/infrastructure/persistence"
	api "ticketscan-service/internal/interface/http"
	interfaceRepo "ticketscan-service/internal/interface/repository"
	"ticketscan-service/internal/interface/textextract"
	"ticketscan-service/internal/usecase"
	"ticketscan-service/pkg/logger"
	"ticketscan-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Ticketscan Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	extractionRepo := interfaceRepo.NewMongoExtractionRepository(db)

	// Reference data is optional; without Postgres journeys keep their
	// scanned fields only
	var airlineRepository repository.AirlineRepository
	var airportRepository repository.AirportRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = interfaceRepo.NewGormAirlineRepository(gormDB)
		airportRepository = interfaceRepo.NewGormAirportRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, reference enrichment disabled")
	}

	// Vision OCR is optional; without it image tickets are rejected
	var ocr usecase.TextExtractor
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" && cfg.GoogleRefreshToken != "" {
		googleOAuth := oauth.NewGoogleOAuth(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRefreshToken,
			log,
		)

		visionOCR, err := textextract.NewVisionOCR(ctx, googleOAuth.GetTokenSource(ctx), log)
		if err != nil {
			log.Fatal("Failed to create Vision OCR client", "error", err)
		}
		ocr = visionOCR
	} else {
		log.Warn("Google OAuth not configured, image OCR disabled")
	}

	// Flight lookup is optional; without it journeys keep scanned times
	var flightLookup repository.FlightLookupRepository
	if cfg.FlightLookupEndpoint != "" {
		flightLookup = interfaceRepo.NewHTTPFlightLookupRepository(log, cfg.FlightLookupEndpoint, cfg.FlightLookupToken)
	} else {
		log.Warn("FLIGHT_LOOKUP_ENDPOINT not set, remote enrichment disabled")
	}

	m := metrics.NewMetrics("ticketscan")

	extractorRouter := usecase.NewExtractorRouter(textextract.NewPDFExtractor(log), ocr, log)
	processor := usecase.NewTicketProcessor(
		extractorRouter,
		flightLookup,
		airlineRepository,
		airportRepository,
		extractionRepo,
		m,
		log,
	)

	handler := api.NewTicketHandler(processor, cfg.MaxUploadMB, log)
	engine := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "version", cfg.AppVersion)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ticketscan Service stopped")
}
