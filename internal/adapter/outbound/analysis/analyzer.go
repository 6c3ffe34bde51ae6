// Package analysis extracts the structural inventory from a JavaScript parse
// tree. A single pre-order depth-first walk drives extraction through a
// dispatch table keyed by node kind, so inventory ordering always matches
// source order.
package analysis

import (
	"context"
	"errors"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/valueobject"
)

// visitFunc handles one node kind during the walk.
type visitFunc func(w *walker, node *valueobject.ParseNode)

// visitors is the dispatch table for the structural walk. Kinds without an
// entry are traversed but contribute nothing themselves. Dispatch applies to
// named nodes only: the grammar reuses kinds like "function" and "class" for
// the keyword tokens inside declarations, and those must never be inventoried.
var visitors = map[string]visitFunc{
	"function_declaration":           visitFunctionDeclaration,
	"generator_function_declaration": visitFunctionDeclaration,
	"function_expression":            visitFunctionExpression,
	"function":                       visitFunctionExpression,
	"generator_function":             visitFunctionExpression,
	"arrow_function":                 visitArrowFunction,
	"method_definition":              visitMethodDefinition,
	"class_declaration":              visitClass,
	"class":                          visitClass,
	"variable_declaration":           visitVariableDeclaration,
	"lexical_declaration":            visitVariableDeclaration,
	"import_statement":               visitImport,
	"export_statement":               visitExport,
	"if_statement":                   visitIf,
	"ternary_expression":             visitTernary,
	"switch_statement":               visitSwitch,
	"switch_case":                    visitSwitchCase,
	"for_statement":                  visitLoop,
	"for_in_statement":               visitLoop,
	"while_statement":                visitLoop,
	"do_statement":                   visitLoop,
	"try_statement":                  visitTry,
	"binary_expression":              visitBinaryExpression,
}

// nestingKinds are the constructs that deepen the nesting level.
var nestingKinds = map[string]bool{
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_expression":            true,
	"function":                       true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
	"if_statement":                   true,
	"switch_statement":               true,
	"for_statement":                  true,
	"for_in_statement":               true,
	"while_statement":                true,
	"do_statement":                   true,
	"try_statement":                  true,
}

// Analyzer implements the StructuralAnalyzer port for JavaScript.
type Analyzer struct{}

// NewAnalyzer creates a structural analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks the parse tree and builds the structural inventory with its
// complexity metrics.
func (a *Analyzer) Analyze(
	ctx context.Context,
	tree *valueobject.ParseTree,
) (*valueobject.AnalysisResult, error) {
	if tree == nil {
		return nil, errors.New("parse tree cannot be nil")
	}

	w := &walker{
		tree:       tree,
		cyclomatic: 1,
	}
	w.walk(tree.RootNode())

	result := &valueobject.AnalysisResult{
		Language:     tree.Language(),
		LanguageName: tree.Language().Name(),
		Functions:    w.functions,
		Classes:      w.classes,
		Variables:    w.variables,
		Imports:      w.imports,
		Exports:      w.exports,
		Conditionals: w.conditionals,
		Loops:        w.loops,
		Tries:        w.tries,
		Metrics: valueobject.ComplexityMetrics{
			CyclomaticComplexity: w.cyclomatic,
			LinesOfCode:          tree.LineCount(),
			FunctionsCount:       len(w.functions),
			ClassesCount:         len(w.classes),
			MaxNestingDepth:      w.maxDepth,
		},
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	slogger.Debug(ctx, "structural analysis completed", slogger.Fields{
		"functions":  len(w.functions),
		"classes":    len(w.classes),
		"cyclomatic": w.cyclomatic,
		"max_depth":  w.maxDepth,
	})

	return result, nil
}

// walker carries the traversal state for one analysis.
type walker struct {
	tree *valueobject.ParseTree

	functions    []valueobject.FunctionInfo
	classes      []valueobject.ClassInfo
	variables    []valueobject.VariableInfo
	imports      []valueobject.ImportInfo
	exports      []valueobject.ExportInfo
	conditionals []valueobject.ConditionalInfo
	loops        []valueobject.LoopInfo
	tries        []valueobject.TryInfo

	cyclomatic int
	depth      int
	maxDepth   int

	// ancestors holds the path from the root to the current node, used for
	// resolving names of anonymous function expressions.
	ancestors []*valueobject.ParseNode

	// complexityStack tracks per-function complexity scopes. Only the
	// innermost scope receives increments, so nested function bodies never
	// inflate their enclosing function.
	complexityStack []complexityScope
}

// complexityScope accumulates local complexity for one function-like node.
// funcIndex points at the owning entry in walker.functions, or -1 when the
// scope belongs to a method or other construct not in the function inventory.
type complexityScope struct {
	count     int
	funcIndex int
}

// walk visits node and its children in pre-order.
func (w *walker) walk(node *valueobject.ParseNode) {
	if node == nil {
		return
	}

	nests := node.IsNamed && nestingKinds[node.Kind]
	if nests {
		w.depth++
		if w.depth > w.maxDepth {
			w.maxDepth = w.depth
		}
	}

	if node.IsNamed {
		if visit, ok := visitors[node.Kind]; ok {
			visit(w, node)
		}
	}

	w.ancestors = append(w.ancestors, node)
	for _, child := range node.Children {
		w.walk(child)
	}
	w.ancestors = w.ancestors[:len(w.ancestors)-1]

	if node.IsNamed && isFunctionLike(node.Kind) {
		w.popComplexityScope()
	}
	if nests {
		w.depth--
	}
}

// pushComplexityScope opens a local complexity scope, starting at 1. The
// funcIndex ties the scope back to its function inventory entry so the final
// count can be written when the scope closes.
func (w *walker) pushComplexityScope(funcIndex int) {
	w.complexityStack = append(w.complexityStack, complexityScope{count: 1, funcIndex: funcIndex})
}

func (w *walker) popComplexityScope() {
	if len(w.complexityStack) == 0 {
		return
	}
	scope := w.complexityStack[len(w.complexityStack)-1]
	w.complexityStack = w.complexityStack[:len(w.complexityStack)-1]
	if scope.funcIndex >= 0 {
		w.functions[scope.funcIndex].LocalComplexity = scope.count
	}
}

// addLocalComplexity increments the innermost function scope, if any.
func (w *walker) addLocalComplexity() {
	if len(w.complexityStack) > 0 {
		w.complexityStack[len(w.complexityStack)-1].count++
	}
}

func (w *walker) nodeText(node *valueobject.ParseNode) string {
	return w.tree.NodeText(node)
}

// parent returns the n-th ancestor of the node currently being visited,
// where 1 is the direct parent.
func (w *walker) parent(n int) *valueobject.ParseNode {
	if len(w.ancestors) < n {
		return nil
	}
	return w.ancestors[len(w.ancestors)-n]
}

func isFunctionLike(kind string) bool {
	switch kind {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}
