package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"testsmith/internal/adapter/outbound/analysis"
	"testsmith/internal/adapter/outbound/heuristics"
	"testsmith/internal/adapter/outbound/synthesis"
	"testsmith/internal/adapter/outbound/templates"
	"testsmith/internal/adapter/outbound/treesitter"
	"testsmith/internal/domain/valueobject"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// analyzeConcurrency bounds parallel file analysis.
const analyzeConcurrency = 4

// fileReport holds the analysis output for one input file.
type fileReport struct {
	File      string                           `json:"file"                 yaml:"file"`
	Result    *valueobject.AnalysisResult      `json:"result"               yaml:"result"`
	TestCases []valueobject.TestCaseDescriptor `json:"test_cases"           yaml:"test_cases"`
	Error     string                           `json:"error,omitempty"      yaml:"error,omitempty"`
}

// newAnalyzeCmd creates and returns the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var (
		framework string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Analyze JavaScript files locally",
		Long: `Analyze one or more JavaScript files without a running server.

Each file is parsed, its structural inventory extracted, and test case
descriptors synthesized with the builtin templates. Files are processed in
parallel and results are printed in input order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported output format: %s", format)
			}
			return runAnalyze(cmd, args, framework, format)
		},
	}

	cmd.Flags().StringVarP(&framework, "framework", "f", "jest", "Target test framework")
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (yaml, json)")
	return cmd
}

// runAnalyze processes the given files in parallel and writes the reports.
func runAnalyze(cmd *cobra.Command, files []string, framework, format string) error {
	cfg := GetConfig()

	analyzer := analysis.NewAnalyzer()
	// No template store: the renderer falls back to the builtin templates.
	renderer := templates.NewRenderer(nil)
	synthesizer := synthesis.NewSynthesizer(heuristics.NewValueGenerator(), renderer)

	reports := make([]fileReport, len(files))

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(analyzeConcurrency)

	for i, file := range files {
		group.Go(func() error {
			reports[i] = analyzeFile(ctx, cfg.MaxSourceSize(), file, framework, analyzer, synthesizer)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	}
	return yaml.NewEncoder(out).Encode(reports)
}

// analyzeFile runs the full pipeline for a single file. Failures are recorded
// on the report rather than aborting the batch. Each call owns its parser
// since tree-sitter parsers are not safe for concurrent use.
func analyzeFile(
	ctx context.Context,
	maxSourceSize int,
	file, framework string,
	analyzer *analysis.Analyzer,
	synthesizer *synthesis.Synthesizer,
) fileReport {
	report := fileReport{File: filepath.Clean(file)}

	source, err := os.ReadFile(file)
	if err != nil {
		report.Error = fmt.Sprintf("failed to read file: %v", err)
		return report
	}

	parser, err := treesitter.NewParser(maxSourceSize)
	if err != nil {
		report.Error = fmt.Sprintf("failed to create parser: %v", err)
		return report
	}

	tree, err := parser.Parse(ctx, valueobject.LanguageJavaScript, string(source))
	if err != nil {
		report.Error = err.Error()
		return report
	}

	result, err := analyzer.Analyze(ctx, tree)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Result = result

	descriptors, err := synthesizer.Synthesize(ctx, result, framework)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	// NaN inputs would abort JSON encoding of the report.
	report.TestCases = valueobject.JSONSafeDescriptors(descriptors)

	return report
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newAnalyzeCmd())
}
