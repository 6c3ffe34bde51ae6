package outbound

import (
	"context"

	"testsmith/internal/domain/valueobject"
)

// ValueGenerator defines the outbound port for heuristic test data. Given a
// parameter name it produces a representative value, a stricter quality
// value, or one of the rotating invalid values. The same inputs always yield
// the same outputs.
type ValueGenerator interface {
	ValueFor(name string) any
	QualityValueFor(name string) any
	InvalidValueAt(index int) any
}

// TestCaseSynthesizer defines the outbound port for turning a structural
// inventory into test case descriptors. The framework selects which templates
// render the descriptor code.
type TestCaseSynthesizer interface {
	Synthesize(
		ctx context.Context,
		result *valueobject.AnalysisResult,
		framework string,
	) ([]valueobject.TestCaseDescriptor, error)
}

// TemplateStore defines the outbound port for resolving test code templates
// by language, framework, and test kind. A miss returns ErrTemplateNotFound
// from the implementing package so renderers can fall back to defaults.
type TemplateStore interface {
	FindTemplate(ctx context.Context, language, framework string, kind valueobject.TestKind) (string, error)
}

// TestCodeRenderer defines the outbound port for rendering a descriptor into
// test source code for a target framework.
type TestCodeRenderer interface {
	Render(
		ctx context.Context,
		descriptor valueobject.TestCaseDescriptor,
		language, framework string,
	) (string, error)
}
