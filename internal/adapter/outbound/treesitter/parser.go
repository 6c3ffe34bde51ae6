// Package treesitter adapts the tree-sitter JavaScript grammar to the
// SourceParser port. It validates source before parsing and maps parser
// failures to structured analysis errors.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/analysiserrors"
	"testsmith/internal/domain/valueobject"

	"github.com/alexaandru/go-sitter-forest/javascript"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"
)

const javascriptGrammarVersion = "javascript-1.0"

// Parser parses JavaScript source into a ParseTree. Safe for concurrent use;
// the underlying tree-sitter parser is not, so parses are serialized.
type Parser struct {
	mu            sync.Mutex
	parser        *tree_sitter.Parser
	lang          *tree_sitter.Language
	maxSourceSize int
}

// NewParser creates a tree-sitter backed parser. maxSourceSize bounds the
// accepted source length in bytes.
func NewParser(maxSourceSize int) (*Parser, error) {
	if maxSourceSize <= 0 {
		return nil, errors.New("max source size must be positive")
	}

	parser := tree_sitter.NewParser()
	jsLang := tree_sitter.NewLanguage(javascript.GetLanguage())

	if !parser.SetLanguage(jsLang) {
		return nil, errors.New("failed to set JavaScript language in tree-sitter parser")
	}

	return &Parser{
		parser:        parser,
		lang:          jsLang,
		maxSourceSize: maxSourceSize,
	}, nil
}

// SupportedLanguages returns the languages this parser accepts.
func (p *Parser) SupportedLanguages() []valueobject.Language {
	return []valueobject.Language{valueobject.LanguageJavaScript}
}

// Parse validates and parses source, returning a ParseTree or a structured
// analysis error. Validation runs in a fixed order: input checks first, then
// the size limit, and only then the actual parse.
func (p *Parser) Parse(
	ctx context.Context,
	language valueobject.Language,
	source string,
) (*valueobject.ParseTree, error) {
	tree, err := p.parse(ctx, language, source)

	metrics := getParserMetrics()
	if err != nil {
		var analysisErr *analysiserrors.AnalysisError
		category := "internal"
		if errors.As(err, &analysisErr) {
			category = string(analysisErr.Category)
		}
		metrics.recordParseError(ctx, language.Name(), category)
		return nil, err
	}

	meta := tree.Metadata()
	metrics.recordParse(ctx, language.Name(), meta.ParseDuration, meta.NodeCount, len(source))
	return tree, nil
}

func (p *Parser) parse(
	ctx context.Context,
	language valueobject.Language,
	source string,
) (*valueobject.ParseTree, error) {
	if !language.Equal(valueobject.LanguageJavaScript) {
		return nil, analysiserrors.NewInvalidInputError(
			fmt.Sprintf("unsupported language: %s", language.Name()))
	}
	if strings.TrimSpace(source) == "" {
		return nil, analysiserrors.NewInvalidInputError("source cannot be empty")
	}
	if !utf8.ValidString(source) {
		return nil, analysiserrors.NewInvalidInputError("source is not valid UTF-8")
	}
	if len(source) > p.maxSourceSize {
		return nil, analysiserrors.NewSizeLimitError(len(source), p.maxSourceSize)
	}

	startTime := time.Now()
	raw := []byte(source)

	p.mu.Lock()
	tree, err := p.parser.ParseString(ctx, nil, raw)
	p.mu.Unlock()
	if err != nil {
		return nil, analysiserrors.NewSyntaxError(
			fmt.Sprintf("tree-sitter parsing failed: %v", err), 0, 0)
	}
	defer tree.Close()

	parseDuration := time.Since(startTime)

	rootNode := convertTreeSitterNode(tree.RootNode())

	metadata := valueobject.ParseMetadata{
		ParseDuration:  parseDuration,
		GrammarVersion: javascriptGrammarVersion,
		NodeCount:      countNodes(rootNode),
		MaxDepth:       calculateMaxDepth(rootNode),
	}

	parseTree, err := valueobject.NewParseTree(language, rootNode, raw, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse tree: %w", err)
	}

	if errNode := parseTree.FirstErrorNode(); errNode != nil {
		return nil, analysiserrors.NewSyntaxError(
			syntaxErrorMessage(parseTree, errNode),
			errNode.Line(),
			int(errNode.StartPos.Column)+1,
		)
	}

	slogger.Debug(ctx, "source parsed successfully", slogger.Fields{
		"source_length":  len(source),
		"node_count":     metadata.NodeCount,
		"max_depth":      metadata.MaxDepth,
		"parse_duration": parseDuration.String(),
	})

	return parseTree, nil
}

// convertTreeSitterNode converts a tree-sitter node to the ParseNode structure.
// Missing nodes keep no useful kind of their own, so they are tagged MISSING.
// Anonymous tokens (keywords, punctuation) are kept as children because the
// analyzer inspects them, but they are marked so it never dispatches on them.
func convertTreeSitterNode(tsNode tree_sitter.Node) *valueobject.ParseNode {
	kind := tsNode.Type()
	if tsNode.IsMissing() {
		kind = "MISSING"
	}

	node := &valueobject.ParseNode{
		Kind:      kind,
		IsNamed:   tsNode.IsNamed(),
		StartByte: valueobject.ClampUintToUint32(tsNode.StartByte()),
		EndByte:   valueobject.ClampUintToUint32(tsNode.EndByte()),
		StartPos: valueobject.Position{
			Row:    valueobject.ClampUintToUint32(tsNode.StartPoint().Row),
			Column: valueobject.ClampUintToUint32(tsNode.StartPoint().Column),
		},
		EndPos: valueobject.Position{
			Row:    valueobject.ClampUintToUint32(tsNode.EndPoint().Row),
			Column: valueobject.ClampUintToUint32(tsNode.EndPoint().Column),
		},
		Children: make([]*valueobject.ParseNode, 0),
	}

	childCount := tsNode.ChildCount()
	for i := range childCount {
		child := tsNode.Child(i)
		if !child.IsNull() {
			node.Children = append(node.Children, convertTreeSitterNode(child))
		}
	}

	return node
}

func syntaxErrorMessage(tree *valueobject.ParseTree, errNode *valueobject.ParseNode) string {
	if errNode.Kind == "MISSING" {
		return "missing token in source"
	}
	text := tree.NodeText(errNode)
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	if text == "" {
		return "syntax error in source"
	}
	return fmt.Sprintf("syntax error near %q", text)
}

func countNodes(node *valueobject.ParseNode) int {
	if node == nil {
		return 0
	}

	count := 1
	for _, child := range node.Children {
		count += countNodes(child)
	}
	return count
}

func calculateMaxDepth(node *valueobject.ParseNode) int {
	if node == nil || len(node.Children) == 0 {
		return 1
	}

	maxChildDepth := 0
	for _, child := range node.Children {
		childDepth := calculateMaxDepth(child)
		if childDepth > maxChildDepth {
			maxChildDepth = childDepth
		}
	}
	return 1 + maxChildDepth
}
