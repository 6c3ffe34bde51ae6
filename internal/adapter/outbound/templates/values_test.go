package templates

import (
	"math"
	"testing"

	"testsmith/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: "null"},
		{name: "undefined", value: valueobject.UndefinedValue{}, expected: "undefined"},
		{name: "true", value: true, expected: "true"},
		{name: "false", value: false, expected: "false"},
		{name: "string", value: "Test Name", expected: `"Test Name"`},
		{name: "string with quotes", value: `say "hi"`, expected: `"say \"hi\""`},
		{name: "int", value: 42, expected: "42"},
		{name: "int64", value: int64(-7), expected: "-7"},
		{name: "float", value: 100.50, expected: "100.5"},
		{name: "nan", value: math.NaN(), expected: "NaN"},
		{name: "empty slice", value: []any{}, expected: "[]"},
		{name: "slice", value: []any{"item1", 2, nil}, expected: `["item1", 2, null]`},
		{name: "nested slice", value: []any{[]any{1}, []any{2}}, expected: "[[1], [2]]"},
		{name: "empty map", value: map[string]any{}, expected: "{}"},
		{
			name:     "map keys sorted",
			value:    map[string]any{"b": 2, "a": 1, "c": 3},
			expected: "{a: 1, b: 2, c: 3}",
		},
		{
			name:     "nested map",
			value:    map[string]any{"user": map[string]any{"id": 1, "name": "Test User"}},
			expected: `{user: {id: 1, name: "Test User"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}

func TestFormatArguments(t *testing.T) {
	assert.Empty(t, FormatArguments(nil))
	assert.Empty(t, FormatArguments(map[string]any{}))

	// Arguments are ordered by sorted key.
	args := FormatArguments(map[string]any{"b": "second", "a": 1})
	assert.Equal(t, `1, "second"`, args)
}

func TestSubstitute(t *testing.T) {
	bindings := map[string]string{
		"owner": "add",
		"input": "1, 2",
	}

	rendered := Substitute("const result = {{owner}}({{input}});", bindings)
	assert.Equal(t, "const result = add(1, 2);", rendered)
}

func TestSubstitute_UnmatchedPlaceholdersAreLeftIntact(t *testing.T) {
	rendered := Substitute("{{owner}} expects {{expected}}", map[string]string{"owner": "add"})
	assert.Equal(t, "add expects {{expected}}", rendered)
}
