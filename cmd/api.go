package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"testsmith/internal/adapter/inbound/api"
	"testsmith/internal/adapter/outbound/analysis"
	"testsmith/internal/adapter/outbound/heuristics"
	"testsmith/internal/adapter/outbound/messaging"
	"testsmith/internal/adapter/outbound/repository"
	"testsmith/internal/adapter/outbound/synthesis"
	"testsmith/internal/adapter/outbound/templates"
	"testsmith/internal/adapter/outbound/treesitter"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/application/service"
	"testsmith/internal/config"
	"testsmith/internal/port/inbound"
	"testsmith/internal/port/outbound"
	"testsmith/internal/version"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ServiceFactory creates and wires the API server's dependencies.
type ServiceFactory struct {
	config    *config.Config
	pool      *pgxpool.Pool
	publisher *messaging.NATSMessagePublisher
}

// NewServiceFactory creates a new ServiceFactory.
func NewServiceFactory(cfg *config.Config) *ServiceFactory {
	return &ServiceFactory{config: cfg}
}

// CreateServer creates a fully configured server instance.
func (sf *ServiceFactory) CreateServer() (*api.Server, error) {
	pool, err := sf.databasePool()
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	publisher, err := messaging.NewNATSMessagePublisher(sf.config.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	sf.publisher = publisher

	analysisService, err := sf.createAnalysisService(pool, publisher)
	if err != nil {
		return nil, err
	}

	analysisRepo := repository.NewPostgreSQLAnalysisRepository(pool)
	testCaseRepo := repository.NewPostgreSQLTestCaseRepository(pool)
	testCaseService := service.NewDefaultTestCaseService(analysisRepo, testCaseRepo)
	healthService := sf.createHealthService(pool, publisher)

	return api.NewServer(
		sf.config,
		healthService,
		analysisService,
		testCaseService,
		api.NewDefaultErrorHandler(),
	)
}

// createAnalysisService wires the analysis pipeline behind the inbound port.
func (sf *ServiceFactory) createAnalysisService(
	pool *pgxpool.Pool,
	publisher outbound.MessagePublisher,
) (inbound.AnalysisService, error) {
	parser, err := treesitter.NewParser(sf.config.MaxSourceSize())
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	templateStore := templates.NewCachedStore(
		repository.NewPostgreSQLTemplateStore(pool),
		sf.config.Analysis.TemplateCacheTTL,
	)
	renderer := templates.NewRenderer(templateStore)
	synthesizer := synthesis.NewSynthesizer(heuristics.NewValueGenerator(), renderer)

	return service.NewDefaultAnalysisService(
		repository.NewPostgreSQLAnalysisRepository(pool),
		repository.NewPostgreSQLTestCaseRepository(pool),
		parser,
		analysis.NewAnalyzer(),
		synthesizer,
		publisher,
		sf.config.Analysis.DefaultFramework,
	), nil
}

// createHealthService builds the health service with live dependency checks.
func (sf *ServiceFactory) createHealthService(
	pool *pgxpool.Pool,
	publisher *messaging.NATSMessagePublisher,
) inbound.HealthService {
	checks := map[string]service.DependencyCheck{
		"database": func(ctx context.Context) error {
			return repository.HealthCheck(ctx, pool)
		},
		"nats": func(_ context.Context) error {
			if !publisher.Connected() {
				return fmt.Errorf("NATS connection is down")
			}
			return nil
		},
	}
	return service.NewDefaultHealthService(version.Get().Version, checks)
}

// databasePool creates the shared database connection pool.
func (sf *ServiceFactory) databasePool() (*pgxpool.Pool, error) {
	if sf.pool != nil {
		return sf.pool, nil
	}
	pool, err := repository.NewDatabaseConnection(databaseConfig(sf.config))
	if err != nil {
		return nil, err
	}
	sf.pool = pool
	return pool, nil
}

// Close releases the factory's shared resources.
func (sf *ServiceFactory) Close() {
	if sf.publisher != nil {
		sf.publisher.Close()
	}
	if sf.pool != nil {
		sf.pool.Close()
	}
}

// databaseConfig maps application config onto the repository connection config.
func databaseConfig(cfg *config.Config) repository.DatabaseConfig {
	dbConfig := repository.DatabaseConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		Database:       cfg.Database.Name,
		Username:       cfg.Database.User,
		Password:       cfg.Database.Password,
		Schema:         "testsmith",
		MaxConnections: cfg.Database.MaxConnections,
		SSLMode:        cfg.Database.SSLMode,
	}

	if dbConfig.Host == "" {
		dbConfig.Host = "localhost"
	}
	if dbConfig.Port == 0 {
		dbConfig.Port = 5432
	}
	if dbConfig.MaxConnections == 0 {
		dbConfig.MaxConnections = 10
	}
	if dbConfig.SSLMode == "" {
		dbConfig.SSLMode = "disable"
	}
	return dbConfig
}

// setupMetrics installs the global OTEL meter provider.
func setupMetrics() *sdkmetric.MeterProvider {
	provider := sdkmetric.NewMeterProvider()
	otel.SetMeterProvider(provider)
	return provider
}

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the HTTP API server that provides REST endpoints for source
analysis and test case synthesis.

The server provides endpoints for:
- Health checks
- Synchronous analysis with test case synthesis
- Asynchronous analysis job management
- Synthesized test case retrieval

Configuration is loaded from config files and environment variables.`,
	Run: func(_ *cobra.Command, _ []string) {
		runAPIServer()
	},
}

func runAPIServer() {
	cfg := GetConfig()

	meterProvider := setupMetrics()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	factory := NewServiceFactory(cfg)
	defer factory.Close()

	server, err := factory.CreateServer()
	if err != nil {
		slogger.ErrorNoCtx("Failed to create API server", slogger.Field("error", err.Error()))
		os.Exit(1)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startCancel()

	if err := server.Start(startCtx); err != nil {
		slogger.ErrorNoCtx("Failed to start API server", slogger.Field("error", err.Error()))
		os.Exit(1)
	}

	slogger.InfoNoCtx("API server started successfully", slogger.Field("address", server.Address()))

	gracefulShutdown(server)
}

// gracefulShutdown blocks until a termination signal, then drains the server.
func gracefulShutdown(server *api.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slogger.InfoNoCtx("Received signal, initiating graceful shutdown", slogger.Field("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.ErrorNoCtx("Error during server shutdown", slogger.Field("error", err.Error()))
		os.Exit(1)
	}

	slogger.InfoNoCtx("API server shut down gracefully", nil)
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(apiCmd)
}
