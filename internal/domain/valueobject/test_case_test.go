package valueobject

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestJSONSafeValue_ReplacesNaN(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nan", math.NaN(), "NaN"},
		{"plain float", 100.5, 100.5},
		{"string", "testValue", "testValue"},
		{"nil", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := JSONSafeValue(tc.value)
			if got != tc.want {
				t.Errorf("JSONSafeValue(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestJSONSafeValue_RecursesThroughCollections(t *testing.T) {
	value := map[string]any{
		"amount": math.NaN(),
		"items":  []any{math.NaN(), 1.0},
	}

	safe := JSONSafeValue(value).(map[string]any)
	if safe["amount"] != "NaN" {
		t.Errorf("Expected nested NaN replaced, got %v", safe["amount"])
	}
	items := safe["items"].([]any)
	if items[0] != "NaN" || items[1] != 1.0 {
		t.Errorf("Expected slice sanitized, got %v", items)
	}

	if !math.IsNaN(value["amount"].(float64)) {
		t.Error("Original map must not be mutated")
	}
}

func TestJSONSafeDescriptors_DescriptorsEncode(t *testing.T) {
	descriptors := []TestCaseDescriptor{{
		OwnerName:   "transfer",
		Kind:        TestKindEdgeCase,
		Description: "transfer handles invalid rate",
		InputData: map[string]any{
			"rate":   math.NaN(),
			"amount": 100.50,
			"memo":   UndefinedValue{},
		},
		ExpectedOutput: "error",
		Priority:       TestPriorityHigh,
		Status:         TestStatusGenerated,
	}}

	safe := JSONSafeDescriptors(descriptors)

	data, err := json.Marshal(safe)
	if err != nil {
		t.Fatalf("Expected sanitized descriptors to encode, got: %v", err)
	}
	if !strings.Contains(string(data), `"rate":"NaN"`) {
		t.Errorf("Expected NaN stored as its name, got %s", data)
	}
	if !strings.Contains(string(data), `"memo":"undefined"`) {
		t.Errorf("Expected undefined sentinel preserved, got %s", data)
	}

	if !math.IsNaN(descriptors[0].InputData["rate"].(float64)) {
		t.Error("Original descriptor input must not be mutated")
	}
}

func TestJSONSafeDescriptors_NilInput(t *testing.T) {
	if JSONSafeDescriptors(nil) != nil {
		t.Error("Expected nil to pass through")
	}
}
