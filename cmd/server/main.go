package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/config"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/database"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/logger"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slogger := logger.New(cfg.Logging.Level)

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	slogger.Info("connected to database", "path", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	allowanceRepo := repository.NewAllowanceRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo)
	taxReportService := service.NewTaxReportService(transactionRepo, allowanceRepo, summaryRepo, slogger)
	allowanceService := service.NewAllowanceService(allowanceRepo)
	ratesService := service.NewRatesService(rateRepo, settingRepo, cfg.Rates.BaseURL, cfg.Rates.FernetKey, slogger)

	// Background jobs: nightly summary rebuild and rates refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Scheduler.SummaryRebuildSpec, func() {
		if _, err := taxReportService.RebuildSummaries(context.Background()); err != nil {
			slogger.Error("scheduled summary rebuild failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("Invalid summary rebuild cron spec: %v", err)
	}
	if _, err := scheduler.AddFunc(cfg.Scheduler.RatesRefreshSpec, func() {
		if _, err := ratesService.RefreshRates(context.Background()); err != nil {
			slogger.Error("scheduled rates refresh failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("Invalid rates refresh cron spec: %v", err)
	}
	scheduler.Start()

	// Create router
	router := api.NewRouter(systemService, transactionService, taxReportService, allowanceService, ratesService, cfg, slogger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slogger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")

	// Stop scheduling new jobs; running jobs finish on their own
	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slogger.Info("server exited")
}
