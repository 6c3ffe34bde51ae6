package treesitter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// parserMetrics holds the OTEL instruments for parse operations.
type parserMetrics struct {
	parseOperationsCounter metric.Int64Counter
	parseErrorsCounter     metric.Int64Counter
	parseTimeHistogram     metric.Float64Histogram
	nodeCountHistogram     metric.Int64Histogram
	sourceSizeHistogram    metric.Int64Histogram
}

var (
	metricsOnce     sync.Once
	metricsInstance *parserMetrics
)

// getParserMetrics lazily initializes the shared parser metrics. Instrument
// creation failures disable metrics rather than failing parses.
func getParserMetrics() *parserMetrics {
	metricsOnce.Do(func() {
		m, err := initParserMetrics()
		if err != nil {
			return
		}
		metricsInstance = m
	})
	return metricsInstance
}

// initParserMetrics initializes OTEL metrics for parse operations.
func initParserMetrics() (*parserMetrics, error) {
	meter := otel.Meter("testsmith/parser")

	opsCounter, err := meter.Int64Counter(
		"parse_operations_total",
		metric.WithDescription("Total number of parse operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse operations counter: %w", err)
	}

	errorsCounter, err := meter.Int64Counter(
		"parse_errors_total",
		metric.WithDescription("Total number of failed parse operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse errors counter: %w", err)
	}

	timeHist, err := meter.Float64Histogram(
		"parse_duration_seconds",
		metric.WithDescription("Duration of parse operations in seconds"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse time histogram: %w", err)
	}

	nodeCountHist, err := meter.Int64Histogram(
		"parse_tree_node_count",
		metric.WithDescription("Number of nodes in the resulting parse tree"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create node count histogram: %w", err)
	}

	sourceSizeHist, err := meter.Int64Histogram(
		"parse_source_size_bytes",
		metric.WithDescription("Size of parsed source in bytes"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create source size histogram: %w", err)
	}

	return &parserMetrics{
		parseOperationsCounter: opsCounter,
		parseErrorsCounter:     errorsCounter,
		parseTimeHistogram:     timeHist,
		nodeCountHistogram:     nodeCountHist,
		sourceSizeHistogram:    sourceSizeHist,
	}, nil
}

// recordParse records metrics for a successful parse operation.
func (m *parserMetrics) recordParse(
	ctx context.Context,
	language string,
	duration time.Duration,
	nodeCount int,
	sourceSize int,
) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("language", language))
	m.parseOperationsCounter.Add(ctx, 1, attrs)
	m.parseTimeHistogram.Record(ctx, duration.Seconds(), attrs)
	m.nodeCountHistogram.Record(ctx, int64(nodeCount), attrs)
	m.sourceSizeHistogram.Record(ctx, int64(sourceSize), attrs)
}

// recordParseError records metrics for a rejected or failed parse.
func (m *parserMetrics) recordParseError(ctx context.Context, language, category string) {
	if m == nil {
		return
	}
	m.parseErrorsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("language", language),
		attribute.String("category", category),
	))
}
