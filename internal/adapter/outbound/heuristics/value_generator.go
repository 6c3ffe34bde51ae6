// Package heuristics maps identifier names to plausible test data. The rules
// are ordered pattern-match chains so tie-breaking between overlapping
// patterns never depends on map iteration order.
package heuristics

import (
	"math"
	"strings"

	"testsmith/internal/domain/valueobject"
)

// nameRule binds a set of substrings to a value factory. Factories allocate
// fresh values so callers can never corrupt shared state.
type nameRule struct {
	substrings []string
	value      func() any
}

// sampleRules resolves representative values, first match wins.
var sampleRules = []nameRule{
	{[]string{"id", "index", "count"}, func() any { return 1 }},
	{[]string{"age", "year"}, func() any { return 25 }},
	{[]string{"price", "amount", "value"}, func() any { return 100.50 }},
	{[]string{"name", "title"}, func() any { return "Test Name" }},
	{[]string{"email"}, func() any { return "test@example.com" }},
	{[]string{"url", "link"}, func() any { return "https://example.com" }},
	{[]string{"password"}, func() any { return "SecurePass123!" }},
	{[]string{"is", "has", "can"}, func() any { return true }},
	{[]string{"list", "array", "items"}, func() any { return []any{"item1", "item2"} }},
	{[]string{"user", "person"}, func() any {
		return map[string]any{"id": 1, "name": "Test User"}
	}},
	{[]string{"config", "options"}, func() any {
		return map[string]any{"enabled": true, "timeout": 1000}
	}},
}

// qualityRules resolves higher-fidelity valid values, first match wins.
var qualityRules = []nameRule{
	{[]string{"email"}, func() any { return "user@example.com" }},
	{[]string{"phone"}, func() any { return "+15551234567" }},
	{[]string{"date"}, func() any { return "2024-01-15" }},
	{[]string{"url", "link"}, func() any { return "https://example.com/resource" }},
	{[]string{"name"}, func() any { return "Valid Name" }},
}

// invalidValues is the rotation of deliberately bad inputs for
// invalid-parameter descriptors, indexed by parameter position.
var invalidValues = []func() any{
	func() any { return nil },
	func() any { return valueobject.UndefinedValue{} },
	func() any { return "" },
	func() any { return 0 },
	func() any { return -1 },
	func() any { return math.NaN() },
	func() any { return map[string]any{} },
	func() any { return []any{} },
	func() any { return false },
}

// ValueGenerator implements the heuristic value port.
type ValueGenerator struct{}

// NewValueGenerator creates a heuristic value generator.
func NewValueGenerator() *ValueGenerator {
	return &ValueGenerator{}
}

// ValueFor returns a representative value for an identifier name.
func (g *ValueGenerator) ValueFor(name string) any {
	lowered := strings.ToLower(name)
	for _, rule := range sampleRules {
		for _, substring := range rule.substrings {
			if strings.Contains(lowered, substring) {
				return rule.value()
			}
		}
	}
	return "testValue"
}

// QualityValueFor returns a stricter valid value for an identifier name.
func (g *ValueGenerator) QualityValueFor(name string) any {
	lowered := strings.ToLower(name)
	for _, rule := range qualityRules {
		for _, substring := range rule.substrings {
			if strings.Contains(lowered, substring) {
				return rule.value()
			}
		}
	}
	return "validValue"
}

// InvalidValueAt returns the invalid value assigned to a parameter position.
// Positions beyond the rotation wrap around.
func (g *ValueGenerator) InvalidValueAt(index int) any {
	if index < 0 {
		index = 0
	}
	return invalidValues[index%len(invalidValues)]()
}
