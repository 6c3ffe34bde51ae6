package valueobject

import (
	"encoding/json"
	"testing"
)

func TestAnalysisResult_Validate(t *testing.T) {
	valid := AnalysisResult{
		LanguageName: "javascript",
		Functions:    []FunctionInfo{{Name: "add"}},
		Classes:      []ClassInfo{},
		Metrics: ComplexityMetrics{
			CyclomaticComplexity: 1,
			FunctionsCount:       1,
			ClassesCount:         0,
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid result, got: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*AnalysisResult)
	}{
		{"zero cyclomatic complexity", func(r *AnalysisResult) { r.Metrics.CyclomaticComplexity = 0 }},
		{"functions count mismatch", func(r *AnalysisResult) { r.Metrics.FunctionsCount = 3 }},
		{"classes count mismatch", func(r *AnalysisResult) { r.Metrics.ClassesCount = 1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := valid
			tc.mutate(&result)
			if err := result.Validate(); err == nil {
				t.Error("Expected validation error, got none")
			}
		})
	}
}

func TestClassInfo_NonConstructorMethods(t *testing.T) {
	class := ClassInfo{
		Name: "Account",
		Methods: []MethodInfo{
			{Name: "constructor", Role: MethodRoleConstructor},
			{Name: "deposit", Role: MethodRoleMethod},
			{Name: "balance", Role: MethodRoleGetter},
		},
	}

	methods := class.NonConstructorMethods()
	if len(methods) != 2 {
		t.Fatalf("Expected 2 non-constructor methods, got %d", len(methods))
	}
	if methods[0].Name != "deposit" || methods[1].Name != "balance" {
		t.Errorf("Expected inventory order preserved, got %q then %q", methods[0].Name, methods[1].Name)
	}
}

func TestUndefinedValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(UndefinedValue{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != `"undefined"` {
		t.Errorf(`Expected "undefined", got %s`, data)
	}
}

func TestTestCaseDescriptor_Validate(t *testing.T) {
	descriptor := TestCaseDescriptor{
		OwnerName:   "add",
		Kind:        TestKindUnit,
		Description: "add handles a basic invocation",
		Priority:    TestPriorityLow,
	}
	if err := descriptor.Validate(); err != nil {
		t.Fatalf("Expected valid descriptor, got: %v", err)
	}

	missingOwner := descriptor
	missingOwner.OwnerName = ""
	if err := missingOwner.Validate(); err == nil {
		t.Error("Expected error for missing owner name")
	}

	badKind := descriptor
	badKind.Kind = TestKind("smoke")
	if err := badKind.Validate(); err == nil {
		t.Error("Expected error for unknown test kind")
	}
}
