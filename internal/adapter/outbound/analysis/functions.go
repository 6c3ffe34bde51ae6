package analysis

import (
	"fmt"

	"testsmith/internal/domain/valueobject"
)

func visitFunctionDeclaration(w *walker, node *valueobject.ParseNode) {
	info := valueobject.FunctionInfo{
		Name:        functionName(w, node),
		Kind:        valueobject.FunctionKindDeclaration,
		Parameters:  extractParameters(w, node),
		IsAsync:     hasTokenChild(node, "async"),
		IsGenerator: node.Kind == "generator_function_declaration",
		SourceLine:  node.Line(),
	}
	w.functions = append(w.functions, info)
	w.pushComplexityScope(len(w.functions) - 1)
}

func visitFunctionExpression(w *walker, node *valueobject.ParseNode) {
	info := valueobject.FunctionInfo{
		Name:        functionName(w, node),
		Kind:        valueobject.FunctionKindExpression,
		Parameters:  extractParameters(w, node),
		IsAsync:     hasTokenChild(node, "async"),
		IsGenerator: node.Kind == "generator_function" || hasTokenChild(node, "*"),
		SourceLine:  node.Line(),
	}
	w.functions = append(w.functions, info)
	w.pushComplexityScope(len(w.functions) - 1)
}

func visitArrowFunction(w *walker, node *valueobject.ParseNode) {
	info := valueobject.FunctionInfo{
		Name:       functionName(w, node),
		Kind:       valueobject.FunctionKindArrow,
		Parameters: extractParameters(w, node),
		IsAsync:    hasTokenChild(node, "async"),
		SourceLine: node.Line(),
	}
	w.functions = append(w.functions, info)
	w.pushComplexityScope(len(w.functions) - 1)
}

// visitMethodDefinition opens a complexity scope without a function inventory
// entry. Methods are inventoried on their class; the scope only keeps their
// bodies from inflating an enclosing function's complexity.
func visitMethodDefinition(w *walker, _ *valueobject.ParseNode) {
	w.pushComplexityScope(-1)
}

// functionName resolves a function's name. Declarations carry their own
// identifier. Expressions and arrows fall back to the binding they are
// assigned to, or the anonymous marker when there is none.
func functionName(w *walker, node *valueobject.ParseNode) string {
	// An arrow's only identifier child is a bare parameter, never a name.
	if node.Kind != "arrow_function" {
		if ident := node.FirstChildOfKind("identifier"); ident != nil {
			return w.nodeText(ident)
		}
	}

	// Walk outward through wrappers like parenthesized expressions until a
	// naming construct or a statement boundary is found.
	for i := 1; i <= len(w.ancestors); i++ {
		parent := w.parent(i)
		if parent == nil {
			break
		}
		switch parent.Kind {
		case "variable_declarator":
			if ident := parent.FirstChildOfKind("identifier"); ident != nil {
				return w.nodeText(ident)
			}
		case "assignment_expression":
			if len(parent.Children) > 0 {
				left := parent.Children[0]
				if left.Kind == "identifier" || left.Kind == "member_expression" {
					return w.nodeText(left)
				}
			}
		case "pair":
			if key := parent.FirstChildOfKind("property_identifier"); key != nil {
				return w.nodeText(key)
			}
			if key := parent.FirstChildOfKind("string"); key != nil {
				return trimStringLiteral(w.nodeText(key))
			}
		case "parenthesized_expression", "await_expression", "unary_expression":
			continue
		default:
			return valueobject.AnonymousFunctionName
		}
	}
	return valueobject.AnonymousFunctionName
}

// extractParameters reads the parameter list of a function-like node. Arrow
// functions may carry a single bare identifier instead of a parameter list.
func extractParameters(w *walker, node *valueobject.ParseNode) []valueobject.ParameterInfo {
	params := make([]valueobject.ParameterInfo, 0)

	paramsNode := node.FirstChildOfKind("formal_parameters")
	if paramsNode == nil {
		if node.Kind == "arrow_function" {
			if ident := node.FirstChildOfKind("identifier"); ident != nil {
				params = append(params, valueobject.ParameterInfo{
					Name: w.nodeText(ident),
					Kind: valueobject.ParameterKindPlain,
				})
			}
		}
		return params
	}

	for _, child := range paramsNode.Children {
		if param, ok := classifyParameter(w, child, len(params)); ok {
			params = append(params, param)
		}
	}
	return params
}

// classifyParameter maps one formal_parameters child to a ParameterInfo.
// Punctuation children are skipped. Destructuring patterns have no single
// name, so they get a positional placeholder.
func classifyParameter(
	w *walker,
	node *valueobject.ParseNode,
	position int,
) (valueobject.ParameterInfo, bool) {
	switch node.Kind {
	case "identifier":
		return valueobject.ParameterInfo{
			Name: w.nodeText(node),
			Kind: valueobject.ParameterKindPlain,
		}, true
	case "assignment_pattern":
		if len(node.Children) > 0 && node.Children[0].Kind == "identifier" {
			return valueobject.ParameterInfo{
				Name: w.nodeText(node.Children[0]),
				Kind: valueobject.ParameterKindDefaulted,
			}, true
		}
		return valueobject.ParameterInfo{
			Name: placeholderParamName(position),
			Kind: valueobject.ParameterKindComplex,
		}, true
	case "rest_pattern":
		name := placeholderParamName(position)
		if ident := node.FirstChildOfKind("identifier"); ident != nil {
			name = w.nodeText(ident)
		}
		return valueobject.ParameterInfo{
			Name: name,
			Kind: valueobject.ParameterKindRest,
		}, true
	case "object_pattern", "array_pattern":
		return valueobject.ParameterInfo{
			Name: placeholderParamName(position),
			Kind: valueobject.ParameterKindComplex,
		}, true
	}
	return valueobject.ParameterInfo{}, false
}

func placeholderParamName(position int) string {
	return fmt.Sprintf("param%d", position)
}

// hasTokenChild reports whether the node has a direct anonymous child with
// exactly the given token kind.
func hasTokenChild(node *valueobject.ParseNode, token string) bool {
	for _, child := range node.Children {
		if child.Kind == token {
			return true
		}
	}
	return false
}

// trimStringLiteral strips the surrounding quotes from a string literal's
// source text.
func trimStringLiteral(text string) string {
	if len(text) >= 2 {
		first := text[0]
		last := text[len(text)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return text[1 : len(text)-1]
		}
	}
	return text
}
