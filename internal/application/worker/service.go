package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/port/inbound"
)

// Consumer is the message subscription the worker service drives. It is
// satisfied by the NATS consumer adapter.
type Consumer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Running() bool
}

// Service implements the WorkerService inbound port over one consumer and
// its job processor.
type Service struct {
	consumer  Consumer
	processor *JobProcessor

	mu      sync.Mutex
	running bool
}

// NewService creates a worker service.
func NewService(consumer Consumer, processor *JobProcessor) *Service {
	if consumer == nil {
		panic("NewService: consumer cannot be nil")
	}
	if processor == nil {
		panic("NewService: processor cannot be nil")
	}
	return &Service{
		consumer:  consumer,
		processor: processor,
	}
}

// Start begins consuming analysis jobs.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("worker service already started")
	}
	if err := s.consumer.Start(ctx); err != nil {
		return err
	}
	s.running = true

	slogger.Info(ctx, "worker service started", nil)
	return nil
}

// Stop drains the consumer and stops processing.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if err := s.consumer.Stop(ctx); err != nil {
		return err
	}

	slogger.Info(ctx, "worker service stopped", nil)
	return nil
}

// Health reports the worker's processing state.
func (s *Service) Health() inbound.WorkerServiceHealthStatus {
	processed, failed, active := s.processor.Stats()

	s.mu.Lock()
	running := s.running && s.consumer.Running()
	s.mu.Unlock()

	return inbound.WorkerServiceHealthStatus{
		IsRunning:       running,
		ActiveJobs:      active,
		ProcessedJobs:   processed,
		FailedJobs:      failed,
		LastHealthCheck: time.Now(),
	}
}
