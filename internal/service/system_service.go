package service

import (
	"database/sql"
	"runtime"

	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/database"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/model"
	"github.com/ukinvest/Investment-Tax-Engine-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo returns the application version details.
func (s *SystemService) VersionInfo() model.VersionInfo {
	return model.VersionInfo{
		Version:   version.Version,
		GoVersion: runtime.Version(),
		BuildDate: version.BuildDate,
	}
}
