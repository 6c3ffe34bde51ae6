package outbound

import (
	"context"

	"testsmith/internal/domain/valueobject"
)

// SourceParser defines the outbound port for turning source text into a
// parse tree. Implementations validate input before parsing and return
// analysiserrors kinds for invalid, oversized, or syntactically broken
// source.
type SourceParser interface {
	Parse(ctx context.Context, language valueobject.Language, source string) (*valueobject.ParseTree, error)
	SupportedLanguages() []valueobject.Language
}

// StructuralAnalyzer defines the outbound port for extracting the structural
// inventory from a parse tree.
type StructuralAnalyzer interface {
	Analyze(ctx context.Context, tree *valueobject.ParseTree) (*valueobject.AnalysisResult, error)
}
