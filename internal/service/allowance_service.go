package service

import (
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/api/request"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/apperrors"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/repository"
)

// AllowanceService handles allowance configuration business logic.
type AllowanceService struct {
	allowanceRepo *repository.AllowanceRepository
}

// NewAllowanceService creates a new AllowanceService with the provided repository dependencies.
func NewAllowanceService(allowanceRepo *repository.AllowanceRepository) *AllowanceService {
	return &AllowanceService{
		allowanceRepo: allowanceRepo,
	}
}

// ListAllowances returns every configured allowance.
func (s *AllowanceService) ListAllowances() ([]model.Allowance, error) {
	return s.allowanceRepo.ListAllowances()
}

// GetAllowance returns the allowance for one tax year.
func (s *AllowanceService) GetAllowance(taxYear string) (model.Allowance, error) {
	a, err := s.allowanceRepo.GetAllowance(taxYear)
	if err != nil {
		return model.Allowance{}, err
	}
	if a.TaxYear == "" {
		return model.Allowance{}, apperrors.ErrAllowanceNotFound
	}
	return a, nil
}

// UpsertAllowance creates or replaces the allowance for a tax year.
func (s *AllowanceService) UpsertAllowance(req request.UpsertAllowanceRequest) (model.Allowance, error) {
	allowance := model.Allowance{
		TaxYear:           req.TaxYear,
		CGTAllowance:      req.CGTAllowance,
		DividendAllowance: req.DividendAllowance,
	}
	if err := s.allowanceRepo.UpsertAllowance(allowance); err != nil {
		return model.Allowance{}, err
	}
	return allowance, nil
}

// DeleteAllowance removes the allowance for a tax year.
func (s *AllowanceService) DeleteAllowance(taxYear string) error {
	affected, err := s.allowanceRepo.DeleteAllowance(taxYear)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrAllowanceNotFound
	}
	return nil
}
