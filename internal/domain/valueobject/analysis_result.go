package valueobject

import (
	"fmt"
)

// FunctionKind classifies how a function is introduced in source.
type FunctionKind string

const (
	FunctionKindDeclaration FunctionKind = "declaration"
	FunctionKindExpression  FunctionKind = "expression"
	FunctionKindArrow       FunctionKind = "arrow"
)

// ParameterKind classifies a function parameter's binding form.
type ParameterKind string

const (
	ParameterKindPlain     ParameterKind = "plain"
	ParameterKindDefaulted ParameterKind = "defaulted"
	ParameterKindRest      ParameterKind = "rest"
	ParameterKindComplex   ParameterKind = "complex"
)

// MethodRole classifies a class member function.
type MethodRole string

const (
	MethodRoleConstructor MethodRole = "constructor"
	MethodRoleGetter      MethodRole = "getter"
	MethodRoleSetter      MethodRole = "setter"
	MethodRoleMethod      MethodRole = "method"
)

// AnonymousFunctionName marks functions without a resolvable name.
const AnonymousFunctionName = "(anonymous)"

// ParameterInfo describes one function parameter.
type ParameterInfo struct {
	Name string        `json:"name"`
	Kind ParameterKind `json:"kind"`
}

// FunctionInfo describes one function-like construct. Identity within a single
// analysis is (Name, SourceLine).
type FunctionInfo struct {
	Name            string          `json:"name"`
	Kind            FunctionKind    `json:"kind"`
	Parameters      []ParameterInfo `json:"parameters"`
	IsAsync         bool            `json:"is_async"`
	IsGenerator     bool            `json:"is_generator"`
	SourceLine      int             `json:"source_line"`
	LocalComplexity int             `json:"local_complexity"`
}

// MethodInfo describes one class member function.
type MethodInfo struct {
	Name     string     `json:"name"`
	Role     MethodRole `json:"role"`
	IsStatic bool       `json:"is_static"`
	IsAsync  bool       `json:"is_async"`
}

// PropertyInfo describes one class field.
type PropertyInfo struct {
	Name     string `json:"name"`
	IsStatic bool   `json:"is_static"`
}

// ClassInfo describes one class declaration or expression.
type ClassInfo struct {
	Name           string         `json:"name"`
	SuperclassName string         `json:"superclass_name,omitempty"`
	Methods        []MethodInfo   `json:"methods"`
	Properties     []PropertyInfo `json:"properties"`
	SourceLine     int            `json:"source_line"`
}

// VariableInfo describes one declared variable binding.
type VariableInfo struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"` // var, let, const
	SourceLine int    `json:"source_line"`
}

// ImportBinding describes one locally bound name from an import declaration.
type ImportBinding struct {
	LocalName    string `json:"local_name"`
	ImportedName string `json:"imported_name,omitempty"` // original exported name for named imports
}

// ImportInfo describes one import declaration.
type ImportInfo struct {
	ModulePath string          `json:"module_path"`
	Bindings   []ImportBinding `json:"bindings"`
	SourceLine int             `json:"source_line"`
}

// ExportInfo describes one export declaration.
type ExportInfo struct {
	Name       string `json:"name"`
	IsDefault  bool   `json:"is_default"`
	SourceLine int    `json:"source_line"`
}

// ConditionalInfo is a lightweight location+shape record for a branching construct.
type ConditionalInfo struct {
	Kind               string `json:"kind"` // if, ternary, switch
	SourceLine         int    `json:"source_line"`
	HasAlternateBranch bool   `json:"has_alternate_branch"`
}

// LoopInfo is a lightweight location+shape record for a loop construct.
type LoopInfo struct {
	Kind       string `json:"kind"` // for, while, do-while, for-in, for-of
	SourceLine int    `json:"source_line"`
}

// TryInfo is a lightweight location+shape record for an exception-handling block.
type TryInfo struct {
	SourceLine int  `json:"source_line"`
	HasCatch   bool `json:"has_catch"`
	HasFinally bool `json:"has_finally"`
}

// ComplexityMetrics aggregates structural complexity over one analysis.
type ComplexityMetrics struct {
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
	LinesOfCode          int `json:"lines_of_code"`
	FunctionsCount       int `json:"functions_count"`
	ClassesCount         int `json:"classes_count"`
	MaxNestingDepth      int `json:"max_nesting_depth"`
}

// AnalysisResult is the immutable structural inventory produced by one
// analysis request. It is created once per request, never mutated after
// construction, and owned exclusively by the caller that requested it.
type AnalysisResult struct {
	Language     Language          `json:"-"`
	LanguageName string            `json:"language"`
	Functions    []FunctionInfo    `json:"functions"`
	Classes      []ClassInfo       `json:"classes"`
	Variables    []VariableInfo    `json:"variables"`
	Imports      []ImportInfo      `json:"imports"`
	Exports      []ExportInfo      `json:"exports"`
	Conditionals []ConditionalInfo `json:"conditionals"`
	Loops        []LoopInfo        `json:"loops"`
	Tries        []TryInfo         `json:"tries"`
	Metrics      ComplexityMetrics `json:"metrics"`
}

// Validate checks the structural invariants every AnalysisResult must hold.
func (r *AnalysisResult) Validate() error {
	if r.Metrics.CyclomaticComplexity < 1 {
		return fmt.Errorf("cyclomatic complexity must be at least 1, got %d", r.Metrics.CyclomaticComplexity)
	}
	if r.Metrics.FunctionsCount != len(r.Functions) {
		return fmt.Errorf("functions count %d does not match inventory size %d",
			r.Metrics.FunctionsCount, len(r.Functions))
	}
	if r.Metrics.ClassesCount != len(r.Classes) {
		return fmt.Errorf("classes count %d does not match inventory size %d",
			r.Metrics.ClassesCount, len(r.Classes))
	}
	return nil
}

// NonConstructorMethods returns the methods of a class eligible for per-method
// test synthesis. Constructor behavior is covered by the instantiation test.
func (c ClassInfo) NonConstructorMethods() []MethodInfo {
	methods := make([]MethodInfo, 0, len(c.Methods))
	for _, m := range c.Methods {
		if m.Role != MethodRoleConstructor {
			methods = append(methods, m)
		}
	}
	return methods
}
