package valueobject

import (
	"fmt"
	"math"
)

// TestKind classifies what a synthesized test case exercises.
type TestKind string

const (
	TestKindUnit        TestKind = "unit"
	TestKindIntegration TestKind = "integration"
	TestKindEdgeCase    TestKind = "edge_case"
	TestKindNegative    TestKind = "negative"
)

// TestPriority ranks how important a synthesized test case is.
type TestPriority string

const (
	TestPriorityLow    TestPriority = "low"
	TestPriorityMedium TestPriority = "medium"
	TestPriorityHigh   TestPriority = "high"
)

// TestStatusGenerated is the lifecycle status every freshly synthesized
// descriptor carries. Later statuses belong to consumers of the output.
const TestStatusGenerated = "generated"

// UndefinedValue is the sentinel that stands in for JavaScript undefined in
// descriptor input data. JSON has no undefined, and nil already means null.
type UndefinedValue struct{}

// MarshalJSON renders the sentinel as the string "undefined" so persisted
// descriptors stay readable.
func (UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte(`"undefined"`), nil
}

func (UndefinedValue) String() string { return "undefined" }

// TestCaseDescriptor is one synthesized test case. Descriptors are plain
// data: they carry everything a renderer or downstream consumer needs and
// hold no behavior of their own.
type TestCaseDescriptor struct {
	OwnerName      string         `json:"owner_name"`
	Kind           TestKind       `json:"kind"`
	Description    string         `json:"description"`
	InputData      map[string]any `json:"input_data"`
	ExpectedOutput string         `json:"expected_output"`
	RenderedCode   string         `json:"rendered_code"`
	Priority       TestPriority   `json:"priority"`
	Status         string         `json:"status"`
}

// JSONSafeDescriptors returns copies of the descriptors whose input data can
// be JSON-encoded. encoding/json rejects NaN outright, so it is replaced by
// its literal name; the rendered code keeps the real value.
func JSONSafeDescriptors(descriptors []TestCaseDescriptor) []TestCaseDescriptor {
	if descriptors == nil {
		return nil
	}
	safe := make([]TestCaseDescriptor, len(descriptors))
	for i, descriptor := range descriptors {
		safe[i] = descriptor
		if descriptor.InputData != nil {
			safe[i].InputData = JSONSafeValue(descriptor.InputData).(map[string]any)
		}
	}
	return safe
}

// JSONSafeValue replaces values JSON cannot express with readable stand-ins,
// recursing through maps and slices.
func JSONSafeValue(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
		return v
	case map[string]any:
		safe := make(map[string]any, len(v))
		for key, item := range v {
			safe[key] = JSONSafeValue(item)
		}
		return safe
	case []any:
		safe := make([]any, len(v))
		for i, item := range v {
			safe[i] = JSONSafeValue(item)
		}
		return safe
	default:
		return value
	}
}

// Validate checks the fields every well-formed descriptor must carry.
func (d *TestCaseDescriptor) Validate() error {
	if d.OwnerName == "" {
		return fmt.Errorf("descriptor owner name cannot be empty")
	}
	switch d.Kind {
	case TestKindUnit, TestKindIntegration, TestKindEdgeCase, TestKindNegative:
	default:
		return fmt.Errorf("unknown test kind: %q", d.Kind)
	}
	switch d.Priority {
	case TestPriorityLow, TestPriorityMedium, TestPriorityHigh:
	default:
		return fmt.Errorf("unknown test priority: %q", d.Priority)
	}
	return nil
}
