package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/handlers"
	custommiddleware "github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/middleware"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/config"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	transactionService *service.TransactionService,
	taxReportService *service.TaxReportService,
	allowanceService *service.AllowanceService,
	ratesService *service.RatesService,
	cfg *config.Config,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Get("/", transactionHandler.ListTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/import", transactionHandler.ImportTransactions)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/report", func(r chi.Router) {
			taxReportHandler := handlers.NewTaxReportHandler(taxReportService)
			r.Get("/summary", taxReportHandler.ListSummaries)
			r.Post("/rebuild", taxReportHandler.RebuildSummaries)
			r.Route("/{taxYear}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTaxYearMiddleware)
				r.Get("/", taxReportHandler.GetReport)
			})
		})

		r.Route("/allowance", func(r chi.Router) {
			allowanceHandler := handlers.NewAllowanceHandler(allowanceService)
			r.Get("/", allowanceHandler.ListAllowances)
			r.Put("/", allowanceHandler.UpsertAllowance)
			r.Route("/{taxYear}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTaxYearMiddleware)
				r.Get("/", allowanceHandler.GetAllowance)
				r.Delete("/", allowanceHandler.DeleteAllowance)
			})
		})

		r.Route("/rates", func(r chi.Router) {
			ratesHandler := handlers.NewRatesHandler(ratesService)
			r.Get("/", ratesHandler.GetRate)
			r.Put("/", ratesHandler.SetRate)
			r.Post("/refresh", ratesHandler.RefreshRates)
			r.Put("/token", ratesHandler.SetProviderToken)
		})
	})

	return r
}
