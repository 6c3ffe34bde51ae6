package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	inboundmessaging "testsmith/internal/adapter/inbound/messaging"
	"testsmith/internal/adapter/outbound/analysis"
	"testsmith/internal/adapter/outbound/heuristics"
	"testsmith/internal/adapter/outbound/messaging"
	"testsmith/internal/adapter/outbound/repository"
	"testsmith/internal/adapter/outbound/synthesis"
	"testsmith/internal/adapter/outbound/templates"
	"testsmith/internal/adapter/outbound/treesitter"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/application/worker"
	"testsmith/internal/config"
	"testsmith/internal/port/inbound"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// newWorkerCmd creates and returns the worker command.
func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Start the background worker service",
		Long: `Start the background worker service that processes analysis jobs from NATS JetStream.

The worker service:
- Consumes queued analysis jobs from NATS JetStream
- Parses source, extracts the structural inventory, and synthesizes test cases
- Persists results and synthesized test cases in PostgreSQL
- Provides automatic retry logic for transient failures

Configuration is loaded from config files and environment variables.`,
		Run: func(_ *cobra.Command, _ []string) {
			runWorkerService()
		},
	}
}

// runWorkerService starts and runs the worker service until a signal arrives.
func runWorkerService() {
	cfg := GetConfig()

	slogger.InfoNoCtx("Starting worker service", slogger.Fields{
		"queue_group": cfg.Worker.QueueGroup,
		"job_timeout": cfg.Worker.JobTimeout.String(),
	})

	meterProvider := setupMetrics()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	dbPool, err := repository.NewDatabaseConnection(databaseConfig(cfg))
	if err != nil {
		slogger.ErrorNoCtx("Failed to create database connection pool", slogger.Field("error", err.Error()))
		return
	}
	defer dbPool.Close()

	// The publisher provisions the analysis stream; the consumer shares its
	// connection.
	publisher, err := messaging.NewNATSMessagePublisher(cfg.NATS)
	if err != nil {
		slogger.ErrorNoCtx("Failed to connect to NATS", slogger.Field("error", err.Error()))
		return
	}
	defer publisher.Close()

	workerService, err := createWorkerService(cfg, dbPool, publisher)
	if err != nil {
		slogger.ErrorNoCtx("Failed to create worker service", slogger.Field("error", err.Error()))
		return
	}

	if err := workerService.Start(context.Background()); err != nil {
		slogger.ErrorNoCtx("Failed to start worker service", slogger.Field("error", err.Error()))
		return
	}
	slogger.InfoNoCtx("Worker service started successfully", nil)

	waitForShutdownAndStop(workerService)
}

// createWorkerService wires the job processor and its JetStream consumer.
func createWorkerService(
	cfg *config.Config,
	dbPool *pgxpool.Pool,
	publisher *messaging.NATSMessagePublisher,
) (inbound.WorkerService, error) {
	parser, err := treesitter.NewParser(cfg.MaxSourceSize())
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	templateStore := templates.NewCachedStore(
		repository.NewPostgreSQLTemplateStore(dbPool),
		cfg.Analysis.TemplateCacheTTL,
	)
	renderer := templates.NewRenderer(templateStore)
	synthesizer := synthesis.NewSynthesizer(heuristics.NewValueGenerator(), renderer)

	jobProcessor := worker.NewJobProcessor(
		repository.NewPostgreSQLAnalysisRepository(dbPool),
		repository.NewPostgreSQLTestCaseRepository(dbPool),
		parser,
		analysis.NewAnalyzer(),
		synthesizer,
	)

	consumerConfig := inboundmessaging.ConsumerConfig{
		QueueGroup:  cfg.Worker.QueueGroup,
		DurableName: "analysis-consumer",
		AckWait:     30 * time.Second,
		JobTimeout:  cfg.Worker.JobTimeout,
	}

	consumer, err := inboundmessaging.NewNATSConsumer(publisher.Conn(), consumerConfig, jobProcessor)
	if err != nil {
		return nil, err
	}

	return worker.NewService(consumer, jobProcessor), nil
}

// waitForShutdownAndStop waits for a shutdown signal and stops the service gracefully.
func waitForShutdownAndStop(workerService inbound.WorkerService) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slogger.InfoNoCtx("Received shutdown signal, initiating graceful shutdown", slogger.Fields{
		"signal": sig.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := workerService.Stop(shutdownCtx); err != nil {
		slogger.ErrorNoCtx("Error during worker service shutdown", slogger.Field("error", err.Error()))
		return
	}
	slogger.InfoNoCtx("Worker service shutdown completed successfully", nil)
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newWorkerCmd())
}
