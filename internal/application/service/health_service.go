package service

import (
	"context"
	"time"

	"testsmith/internal/application/dto"
)

// DependencyCheck probes one external dependency.
type DependencyCheck func(ctx context.Context) error

// DefaultHealthService implements the HealthService inbound port by probing
// registered dependency checks.
type DefaultHealthService struct {
	version string
	checks  map[string]DependencyCheck
}

// NewDefaultHealthService creates a health service. Checks may be nil when a
// deployment runs without that dependency.
func NewDefaultHealthService(version string, checks map[string]DependencyCheck) *DefaultHealthService {
	return &DefaultHealthService{
		version: version,
		checks:  checks,
	}
}

// GetHealth probes every dependency and aggregates the result. Any failing
// dependency degrades the overall status; the endpoint itself never errors.
func (s *DefaultHealthService) GetHealth(ctx context.Context) (*dto.HealthResponse, error) {
	dependencies := make(map[string]dto.DependencyStatus, len(s.checks))
	status := dto.HealthStatusHealthy

	for name, check := range s.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			status = dto.HealthStatusDegraded
			dependencies[name] = dto.DependencyStatus{
				Status:  string(dto.DependencyStatusUnhealthy),
				Message: err.Error(),
			}
			continue
		}
		dependencies[name] = dto.DependencyStatus{
			Status: string(dto.DependencyStatusHealthy),
		}
	}

	return &dto.HealthResponse{
		Status:       string(status),
		Timestamp:    time.Now(),
		Version:      s.version,
		Dependencies: dependencies,
	}, nil
}
