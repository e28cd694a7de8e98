package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/engine"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
)

// TaxReportService runs the calculation engine over the stored transaction
// history and manages the materialized per-year summaries.
//
// Every calculation is a full pass over the history with fresh engine state,
// so edits and imports are reflected on the next run without incremental
// bookkeeping.
type TaxReportService struct {
	transactionRepo *repository.TransactionRepository
	allowanceRepo   *repository.AllowanceRepository
	summaryRepo     *repository.SummaryRepository
	log             *slog.Logger
}

// NewTaxReportService creates a new TaxReportService with the provided repository dependencies.
func NewTaxReportService(
	transactionRepo *repository.TransactionRepository,
	allowanceRepo *repository.AllowanceRepository,
	summaryRepo *repository.SummaryRepository,
	log *slog.Logger,
) *TaxReportService {
	return &TaxReportService{
		transactionRepo: transactionRepo,
		allowanceRepo:   allowanceRepo,
		summaryRepo:     summaryRepo,
		log:             log,
	}
}

// Calculate loads the full transaction history and allowance configuration
// and runs one engine pass over them.
func (s *TaxReportService) Calculate(ctx context.Context) (*engine.Result, error) {
	var transactions []model.Transaction
	var allowances map[string]model.Allowance

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListTransactions(repository.TransactionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		allowances, err = s.allowanceRepo.AllowanceMap()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load calculation inputs: %w", err)
	}

	calculator := engine.NewCalculator(s.log)
	result, err := calculator.Calculate(transactions, allowances)
	if err != nil {
		return nil, err
	}

	if len(result.Skipped) > 0 {
		s.log.Warn("calculation skipped transactions", "count", len(result.Skipped))
	}
	if len(result.Warnings) > 0 {
		s.log.Warn("calculation raised warnings", "count", len(result.Warnings))
	}

	return result, nil
}

// GetReport calculates and returns the full tax report for one tax year.
func (s *TaxReportService) GetReport(ctx context.Context, taxYear string) (model.TaxReport, error) {
	result, err := s.Calculate(ctx)
	if err != nil {
		return model.TaxReport{}, err
	}
	return result.ReportFor(taxYear)
}

// RebuildSummaries recalculates every tax year summary from the transaction
// history and replaces the materialized table. Called nightly by the scheduler
// and on demand through the API.
func (s *TaxReportService) RebuildSummaries(ctx context.Context) ([]model.TaxYearSummary, error) {
	result, err := s.Calculate(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.summaryRepo.ReplaceSummaries(result.Summaries); err != nil {
		return nil, err
	}

	s.log.Info("rebuilt tax year summaries", "years", len(result.Summaries))
	return result.Summaries, nil
}

// ListSummaries returns the materialized summaries without recalculating.
func (s *TaxReportService) ListSummaries() ([]model.TaxYearSummary, error) {
	return s.summaryRepo.ListSummaries()
}
