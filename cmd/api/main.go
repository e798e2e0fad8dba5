package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/journey-service/internal/config"
	httpDelivery "github.com/journey-service/internal/delivery/http"
	"github.com/journey-service/internal/delivery/http/handler"
	"github.com/journey-service/internal/infrastructure/oebb"
	"github.com/journey-service/internal/pkg/logger"
	"github.com/journey-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Journey Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("ticketshop_base_url", cfg.TicketShop.BaseURL),
	)

	// 3. Initialize ticket shop client
	shop := oebb.NewClient(&cfg.TicketShop, log)

	// 4. Initialize Use Cases
	journeyUC, err := usecase.NewJourneyUseCase(shop, log)
	if err != nil {
		log.Fatal("Failed to initialize journey use case", zap.Error(err))
	}
	stationUC := usecase.NewStationUseCase(shop, log)

	log.Info("Use cases initialized")

	// 5. Initialize HTTP Handlers
	journeyHandler := handler.NewJourneyHandler(journeyUC, log)
	stationHandler := handler.NewStationHandler(stationUC, log)

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		journeyHandler,
		stationHandler,
	)

	log.Info("HTTP server initialized")

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
