package synthesis

import "strings"

// expectedError is the expected-output marker for descriptors that should
// provoke a failure in the code under test.
const expectedError = "error"

// shapeRule binds name substrings to an expected-output shape.
type shapeRule struct {
	substrings []string
	shape      string
}

// outputShapes resolves the expected-output shape from a function name,
// first match wins.
var outputShapes = []shapeRule{
	{[]string{"get", "find"}, "object-or-null"},
	{[]string{"is", "has", "can"}, "true"},
	{[]string{"count", "length"}, "0"},
	{[]string{"list", "all"}, "[]"},
	{[]string{"create", "save"}, `{"id":1,"created":true}`},
}

// outputShape infers the expected output from a function's name.
func outputShape(name string) string {
	lowered := strings.ToLower(name)
	for _, rule := range outputShapes {
		for _, substring := range rule.substrings {
			if strings.Contains(lowered, substring) {
				return rule.shape
			}
		}
	}
	return `{"type":"unknown"}`
}

// resolvesShape wraps a shape for asynchronous results.
func resolvesShape(shape string) string {
	return "resolves:" + shape
}
