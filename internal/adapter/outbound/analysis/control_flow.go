package analysis

import (
	"testsmith/internal/domain/valueobject"
)

func visitIf(w *walker, node *valueobject.ParseNode) {
	w.cyclomatic++
	w.addLocalComplexity()
	w.conditionals = append(w.conditionals, valueobject.ConditionalInfo{
		Kind:               "if",
		SourceLine:         node.Line(),
		HasAlternateBranch: node.FirstChildOfKind("else_clause") != nil,
	})
}

func visitTernary(w *walker, node *valueobject.ParseNode) {
	w.cyclomatic++
	w.addLocalComplexity()
	w.conditionals = append(w.conditionals, valueobject.ConditionalInfo{
		Kind:               "ternary",
		SourceLine:         node.Line(),
		HasAlternateBranch: true,
	})
}

// visitSwitch records the conditional. The branch weight comes from the case
// clauses, which are visited on their own.
func visitSwitch(w *walker, node *valueobject.ParseNode) {
	w.conditionals = append(w.conditionals, valueobject.ConditionalInfo{
		Kind:               "switch",
		SourceLine:         node.Line(),
		HasAlternateBranch: switchHasDefault(node),
	})
}

func visitSwitchCase(w *walker, _ *valueobject.ParseNode) {
	w.cyclomatic++
	w.addLocalComplexity()
}

func visitLoop(w *walker, node *valueobject.ParseNode) {
	w.cyclomatic++
	w.addLocalComplexity()
	w.loops = append(w.loops, valueobject.LoopInfo{
		Kind:       loopKind(node),
		SourceLine: node.Line(),
	})
}

func visitTry(w *walker, node *valueobject.ParseNode) {
	w.cyclomatic++
	w.tries = append(w.tries, valueobject.TryInfo{
		SourceLine: node.Line(),
		HasCatch:   node.FirstChildOfKind("catch_clause") != nil,
		HasFinally: node.FirstChildOfKind("finally_clause") != nil,
	})
}

// visitBinaryExpression counts short-circuit operators toward the enclosing
// function's local complexity. They add a branch path without being
// statements of their own.
func visitBinaryExpression(w *walker, node *valueobject.ParseNode) {
	if hasTokenChild(node, "&&") || hasTokenChild(node, "||") {
		w.addLocalComplexity()
	}
}

func loopKind(node *valueobject.ParseNode) string {
	switch node.Kind {
	case "for_statement":
		return "for"
	case "while_statement":
		return "while"
	case "do_statement":
		return "do-while"
	case "for_in_statement":
		if hasTokenChild(node, "of") {
			return "for-of"
		}
		return "for-in"
	}
	return node.Kind
}

func switchHasDefault(node *valueobject.ParseNode) bool {
	if body := node.FirstChildOfKind("switch_body"); body != nil {
		return body.FirstChildOfKind("switch_default") != nil
	}
	return false
}
