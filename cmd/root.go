// Package cmd provides the command-line interface for the testsmith application.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"testsmith/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "testsmith",
	Short: "A structural source analyzer and test case synthesizer",
	Long: `Testsmith analyzes JavaScript source code and synthesizes test case
descriptors from its structural inventory.

The system supports:
- Source parsing with tree-sitter
- Structural inventory extraction (functions, classes, control flow)
- Complexity metrics (cyclomatic, per-function, nesting depth)
- Heuristic test case synthesis with template rendering
- Asynchronous job processing with NATS JetStream
- Analysis persistence in PostgreSQL`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
	}
	if err := viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-format flag: %v\n", err)
	}
}

func initConfig() {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TESTSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; use defaults and environment
	}

	cfg = config.New(v)
}

func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.read_timeout", "10s")
	v.SetDefault("api.write_timeout", "10s")

	// Worker defaults
	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.queue_group", "analysis-workers")
	v.SetDefault("worker.job_timeout", "1m")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "testsmith")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_connections", 25)

	// NATS defaults
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 5)
	v.SetDefault("nats.reconnect_wait", "2s")

	// Analysis defaults
	v.SetDefault("analysis.max_source_size", config.DefaultMaxSourceSize)
	v.SetDefault("analysis.default_framework", "jest")
	v.SetDefault("analysis.template_cache_ttl", "5m")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}
