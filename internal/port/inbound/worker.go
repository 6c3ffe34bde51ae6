package inbound

import (
	"context"
	"time"

	"testsmith/internal/domain/messaging"
)

// WorkerService manages message consumption and job processing.
type WorkerService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health() WorkerServiceHealthStatus
}

// JobProcessor processes one analysis job message end to end.
type JobProcessor interface {
	ProcessJob(ctx context.Context, message messaging.AnalysisJobMessage) error
}

// WorkerServiceHealthStatus represents the health status of the worker service.
type WorkerServiceHealthStatus struct {
	IsRunning       bool      `json:"is_running"`
	ActiveJobs      int       `json:"active_jobs"`
	ProcessedJobs   int64     `json:"processed_jobs"`
	FailedJobs      int64     `json:"failed_jobs"`
	LastHealthCheck time.Time `json:"last_health_check"`
}
