package model

// VersionInfo contains application version details for the system endpoints.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	BuildDate string `json:"buildDate,omitempty"`
}

// HealthStatus reports service and database health.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
