package valueobject

import (
	"errors"
	"strings"
	"time"
)

// ParseTree represents a parsed source file as a value object. The tree is a
// closed set of tagged nodes (kind + span + children); nodes hold no parent or
// scope back-references, so the tree is acyclic and serializes directly.
type ParseTree struct {
	language  Language
	rootNode  *ParseNode
	source    []byte
	metadata  ParseMetadata
	createdAt time.Time
}

// ParseNode represents a node in the parse tree. IsNamed distinguishes
// grammar rule nodes from anonymous tokens (keywords, punctuation); both are
// kept because token children carry information like async markers, but only
// named nodes represent constructs of their own.
type ParseNode struct {
	Kind      string       `json:"kind"`
	IsNamed   bool         `json:"is_named,omitempty"`
	StartByte uint32       `json:"start_byte"`
	EndByte   uint32       `json:"end_byte"`
	StartPos  Position     `json:"start_pos"`
	EndPos    Position     `json:"end_pos"`
	Children  []*ParseNode `json:"children,omitempty"`
}

// Position represents a position in source code. Rows and columns are zero-based.
type Position struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// ParseMetadata contains metadata about the parse operation.
type ParseMetadata struct {
	ParseDuration  time.Duration
	GrammarVersion string
	NodeCount      int
	MaxDepth       int
}

// NewParseTree creates a new ParseTree value object with validation.
func NewParseTree(
	language Language,
	rootNode *ParseNode,
	source []byte,
	metadata ParseMetadata,
) (*ParseTree, error) {
	if rootNode == nil {
		return nil, errors.New("root node cannot be nil")
	}

	if len(source) == 0 {
		return nil, errors.New("source code cannot be empty")
	}

	if int64(rootNode.EndByte) > int64(len(source)) {
		return nil, errors.New("root node end byte exceeds source length")
	}

	return &ParseTree{
		language:  language,
		rootNode:  rootNode,
		source:    source,
		metadata:  metadata,
		createdAt: time.Now(),
	}, nil
}

// Language returns the language of the parse tree.
func (pt *ParseTree) Language() Language {
	return pt.language
}

// RootNode returns the root node of the parse tree.
func (pt *ParseTree) RootNode() *ParseNode {
	return pt.rootNode
}

// Source returns the source code of the parse tree.
func (pt *ParseTree) Source() []byte {
	return pt.source
}

// Metadata returns the metadata of the parse tree.
func (pt *ParseTree) Metadata() ParseMetadata {
	return pt.metadata
}

// CreatedAt returns when the parse tree was created.
func (pt *ParseTree) CreatedAt() time.Time {
	return pt.createdAt
}

// NodeText returns the text content of a node.
func (pt *ParseTree) NodeText(node *ParseNode) string {
	if node == nil || int64(node.EndByte) > int64(len(pt.source)) || node.StartByte > node.EndByte {
		return ""
	}
	return string(pt.source[node.StartByte:node.EndByte])
}

// LineCount returns the number of source lines in the tree's source text.
func (pt *ParseTree) LineCount() int {
	if len(pt.source) == 0 {
		return 0
	}
	return strings.Count(string(pt.source), "\n") + 1
}

// NodesByKind returns all nodes of a specific kind in pre-order.
func (pt *ParseTree) NodesByKind(kind string) []*ParseNode {
	var result []*ParseNode
	collectNodesByKind(pt.rootNode, kind, &result)
	return result
}

// collectNodesByKind recursively collects nodes of a specific kind.
func collectNodesByKind(node *ParseNode, kind string, result *[]*ParseNode) {
	if node == nil {
		return
	}

	if node.Kind == kind {
		*result = append(*result, node)
	}

	for _, child := range node.Children {
		collectNodesByKind(child, kind, result)
	}
}

// TotalNodeCount returns the total number of nodes in the tree.
func (pt *ParseTree) TotalNodeCount() int {
	return countNodes(pt.rootNode)
}

func countNodes(node *ParseNode) int {
	if node == nil {
		return 0
	}
	count := 1
	for _, child := range node.Children {
		count += countNodes(child)
	}
	return count
}

// Depth returns the maximum depth of the parse tree.
func (pt *ParseTree) Depth() int {
	return calculateDepth(pt.rootNode)
}

func calculateDepth(node *ParseNode) int {
	if node == nil {
		return 0
	}
	maxChild := 0
	for _, child := range node.Children {
		if d := calculateDepth(child); d > maxChild {
			maxChild = d
		}
	}
	return 1 + maxChild
}

// IsErrorNode reports whether a node represents a parser error.
func (pn *ParseNode) IsErrorNode() bool {
	return pn != nil && (pn.Kind == "ERROR" || pn.Kind == "MISSING")
}

// FirstChildOfKind returns the first direct child with the given kind, or nil.
func (pn *ParseNode) FirstChildOfKind(kind string) *ParseNode {
	if pn == nil {
		return nil
	}
	for _, child := range pn.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Line returns the one-based source line the node starts on.
func (pn *ParseNode) Line() int {
	if pn == nil {
		return 0
	}
	return int(pn.StartPos.Row) + 1
}

// FirstErrorNode returns the first ERROR or MISSING node in pre-order, or nil
// when the tree parsed cleanly.
func (pt *ParseTree) FirstErrorNode() *ParseNode {
	return findErrorNode(pt.rootNode)
}

func findErrorNode(node *ParseNode) *ParseNode {
	if node == nil {
		return nil
	}
	if node.IsErrorNode() {
		return node
	}
	for _, child := range node.Children {
		if found := findErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}
